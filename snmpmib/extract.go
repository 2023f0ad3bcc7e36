package snmpmib

import (
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var hexRunPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)
var decimalPattern = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+\.?)(?:[eE][+-]?\d+)?`)

// ExtractFloat parses a float out of an SNMP varbind string, falling back
// to the "hex-encoded ASCII float" convention some agents use: a leading
// "0x", the remaining hex digits decoded to bytes, the bytes interpreted
// as ASCII text, and a decimal number pulled out of that text.
func ExtractFloat(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if strings.HasPrefix(s, "0x") {
		hexDigits := hexRunPattern.FindString(s[2:])
		if raw, err := hex.DecodeString(hexDigits); err == nil {
			s = string(raw)
		}
	}
	if m := decimalPattern.FindString(s); m != "" {
		return strconv.ParseFloat(m, 64)
	}
	return 0, fmt.Errorf("snmpmib: no float value found in %q", s)
}

// Values is the generic result of walking one device's MIB subtree: a flat
// OID-to-string map as returned by the SNMP agent, independent of which
// device type it belongs to.
type Values map[string]string

// Collect resolves every field in fields against v, applying the type
// conversion, indexed-table collection, frequency-divisor, and
// missing-OID-default rules a poll cycle performs for every topic field.
// The returned map holds float64, int, string, []float64, or []int values
// keyed by field name, ready for a caller to assign into a concrete topic
// struct.
func Collect(v Values, fields map[string]Entry) map[string]any {
	out := make(map[string]any, len(fields))
	for name, entry := range fields {
		if entry.Indexed {
			out[name] = collectIndexed(v, entry)
			continue
		}
		out[name] = collectScalar(v, entry)
	}
	return out
}

func collectScalar(v Values, entry Entry) any {
	oid := entry.OID + ".0"
	raw, ok := v[oid]
	if !ok {
		oid = entry.OID + ".1"
		raw, ok = v[oid]
	}
	if !ok {
		return zeroValue(entry.Type)
	}
	// FrequencyOIDs is keyed by the field's OID, without the leaf suffix.
	return convert(raw, entry.OID, entry.Type)
}

// collectIndexed gathers every leaf whose OID carries entry.OID as a
// prefix, in ascending OID order (which, for a table column walked
// row-by-row, is also row-index order).
func collectIndexed(v Values, entry Entry) any {
	var oids []string
	for oid := range v {
		if strings.HasPrefix(oid, entry.OID) {
			oids = append(oids, oid)
		}
	}
	sortOIDs(oids)

	switch entry.Type {
	case TypeInt:
		vals := make([]int, 0, len(oids))
		for _, oid := range oids {
			vals = append(vals, convert(v[oid], oid, entry.Type).(int))
		}
		return vals
	default:
		vals := make([]float64, 0, len(oids))
		for _, oid := range oids {
			vals = append(vals, convert(v[oid], oid, entry.Type).(float64))
		}
		return vals
	}
}

func convert(raw, oid string, t FieldType) any {
	switch t {
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0
		}
		return n
	case TypeString:
		return raw
	default:
		f, err := ExtractFloat(raw)
		if err != nil {
			return math.NaN()
		}
		if FrequencyOIDs[oid] {
			f /= 10.0
		}
		return f
	}
}

func zeroValue(t FieldType) any {
	switch t {
	case TypeInt:
		return 0
	case TypeString:
		return ""
	default:
		return math.NaN()
	}
}

// sortOIDs orders dotted-decimal OID strings numerically component by
// component, so a table's rows come out in index order rather than
// lexicographic ("…10" before "…9") order.
func sortOIDs(oids []string) {
	sort.Slice(oids, func(i, j int) bool {
		as, bs := strings.Split(oids[i], "."), strings.Split(oids[j], ".")
		for k := 0; k < len(as) && k < len(bs); k++ {
			an, aerr := strconv.Atoi(as[k])
			bn, berr := strconv.Atoi(bs[k])
			if aerr != nil || berr != nil {
				if as[k] != bs[k] {
					return as[k] < bs[k]
				}
				continue
			}
			if an != bn {
				return an < bn
			}
		}
		return len(as) < len(bs)
	})
}
