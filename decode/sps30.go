package decode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.SPS30, newSPS30Decoder)
}

const (
	sps30StartChar       = "\x02"
	sps30EndChar         = "\x03"
	sps30GoodStatus      = "00"
	sps30DefaultSize     = "-1.00"
	sps30DefaultConc     = "-1.000"
	sps30DefaultTypeSize = "-1.00"
)

// Capture groups: 1=name 2=timestamp 3-7=sizes 8-12=mass concentrations
// 13-17=number concentrations 18=typical size 19=location 20=status
// 21=checksum.
var sps30Pattern = regexp.MustCompile(
	`^` + sps30StartChar +
		`([^,]+),` +
		`(\d+\.\d+),` +
		`(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),` +
		`(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),` +
		`(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),(\d+\.\d+),` +
		`(\d+\.\d+),` +
		`([^,]+),` +
		`(\d{2})` + sps30EndChar +
		`([0-9a-fA-F]{2})$`,
)

// sps30Decoder decodes a Sensirion SPS30 particulate matter frame: an
// STX-prefixed, comma-separated record of a name, timestamp, five particle
// size fields, five mass-concentration fields, five number-concentration
// fields, a typical particle size, a location, and a two-digit status,
// followed by ETX and a two-character modulo-256 checksum of everything
// between STX (exclusive) and the checksum (inclusive of the status).
type sps30Decoder struct{}

func newSPS30Decoder(Options) Decoder { return sps30Decoder{} }

func (sps30Decoder) Terminator() []byte { return defaultTerminator }

func parseSPS30FloatOrSentinel(s, sentinel string) (float64, error) {
	if s == sentinel {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func (sps30Decoder) Decode(line []byte) (telemetry.Data, error) {
	str := strings.TrimRight(string(line), "\r\n")
	if str == "" {
		out := make(telemetry.Data, 19)
		for i := 0; i < 17; i++ {
			out[i] = math.NaN()
		}
		out[17], out[18] = "", ""
		return out, nil
	}

	m := sps30Pattern.FindStringSubmatch(str)
	if m == nil {
		return nil, fmt.Errorf("decode: sps30 line is unparseable")
	}

	etxIdx := strings.Index(str, sps30EndChar)
	status := m[20]
	checksumInput := str[1:etxIdx] + status
	var computed int
	for _, ch := range checksumInput {
		computed += int(ch)
	}
	computed %= 256

	received, err := strconv.ParseInt(m[21], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("decode: sps30 checksum %q is not hex: %w", m[21], err)
	}
	if computed != int(received) {
		return nil, fmt.Errorf("decode: sps30 checksum mismatch: computed %d, received %d", computed, received)
	}

	out := make(telemetry.Data, 0, 19)
	out = append(out, m[1])

	ts, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, fmt.Errorf("decode: sps30 timestamp %q: %w", m[2], err)
	}
	out = append(out, ts)

	for i := 3; i <= 7; i++ {
		v, err := parseSPS30FloatOrSentinel(m[i], sps30DefaultSize)
		if err != nil {
			return nil, fmt.Errorf("decode: sps30 particle size %q: %w", m[i], err)
		}
		out = append(out, v)
	}
	for i := 8; i <= 17; i++ {
		v, err := parseSPS30FloatOrSentinel(m[i], sps30DefaultConc)
		if err != nil {
			return nil, fmt.Errorf("decode: sps30 concentration %q: %w", m[i], err)
		}
		out = append(out, v)
	}

	typicalSize, err := parseSPS30FloatOrSentinel(m[18], sps30DefaultTypeSize)
	if err != nil {
		return nil, fmt.Errorf("decode: sps30 typical size %q: %w", m[18], err)
	}
	out = append(out, typicalSize)
	out = append(out, m[19])

	return out, nil
}
