package decode

import (
	"regexp"
	"strconv"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.LD250, newLD250Decoder)
}

const (
	ld250StatusPrefix = "WIMST"
	ld250StrikePrefix = "WIMLI"
	ld250NoisePrefix  = "WIMLN"
)

var (
	ld250StatusPattern = regexp.MustCompile(`^\$(` + ld250StatusPrefix + `),(\d{1,3}),(\d{1,3}),(\d{1,2}),(\d{1,2}),(\d\d\d\.\d)\*[0-9A-Fa-f]{2}$`)
	ld250StrikePattern = regexp.MustCompile(`^\$(` + ld250StrikePrefix + `),(\d{1,3}),(\d{1,3}),(\d\d\d\.\d)\*[0-9A-Fa-f]{2}$`)
	ld250NoisePattern  = regexp.MustCompile(`^\$(` + ld250NoisePrefix + `)\*[0-9A-Fa-f]{2}$`)
)

// ld250Decoder decodes the Boltek LD-250 lightning detector's three
// mutually exclusive frame kinds, each distinguished by a fixed prefix:
// WIMST (status), WIMLI (strike), WIMLN (noise). The output's first element
// is always the matched prefix, letting the processor dispatch on it.
type ld250Decoder struct{}

func newLD250Decoder(Options) Decoder { return ld250Decoder{} }

func (ld250Decoder) Terminator() []byte { return defaultTerminator }

func (ld250Decoder) Decode(line []byte) (telemetry.Data, error) {
	if m := ld250StatusPattern.FindSubmatch(line); m != nil {
		closeRate, _ := strconv.Atoi(string(m[2]))
		totalRate, _ := strconv.Atoi(string(m[3]))
		closeAlarm, _ := strconv.Atoi(string(m[4]))
		severeAlarm, _ := strconv.Atoi(string(m[5]))
		heading, _ := strconv.ParseFloat(string(m[6]), 64)
		return telemetry.Data{ld250StatusPrefix, closeRate, totalRate, closeAlarm, severeAlarm, heading}, nil
	}
	if m := ld250StrikePattern.FindSubmatch(line); m != nil {
		corrected, _ := strconv.Atoi(string(m[2]))
		uncorrected, _ := strconv.Atoi(string(m[3]))
		bearing, _ := strconv.ParseFloat(string(m[4]), 64)
		return telemetry.Data{ld250StrikePrefix, corrected, uncorrected, bearing}, nil
	}
	if ld250NoisePattern.Match(line) {
		return telemetry.Data{ld250NoisePrefix}, nil
	}
	return telemetry.Data{}, nil
}
