package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// latin1ToString decodes a byte slice encoded as ISO-8859-1 (Latin-1) to a
// Go string. Latin-1 code points 0-255 map directly onto the first 256
// Unicode code points, so this is a simple widening, unlike UTF-8 decoding.
func latin1ToString(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}

// parseKVFrame splits a comma-separated "key=value" frame into up to n
// float64 values. Fields with no '=' are leftover fragments from a
// mid-stream reconnect and are ignored; a field with more than one '=' is a
// structural error. If fewer than n well-formed fields are found, the
// result is left-padded with NaN (the missing fields are assumed to be the
// leading ones, per the decoder padding invariant). More than n well-formed
// fields is also a structural error.
func parseKVFrame(line string, n int) ([]float64, error) {
	var values []float64
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		count := strings.Count(field, "=")
		if count == 0 {
			continue
		}
		if count > 1 {
			return nil, fmt.Errorf("decode: field %q has more than one '='", field)
		}
		parts := strings.SplitN(field, "=", 2)
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("decode: field %q has an unparseable value: %w", field, err)
		}
		values = append(values, v)
	}
	if len(values) > n {
		return nil, fmt.Errorf("decode: frame has %d fields, expected at most %d", len(values), n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	copy(out[n-len(values):], values)
	return out, nil
}
