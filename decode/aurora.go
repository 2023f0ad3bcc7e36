package decode

import (
	"fmt"
	"strconv"
	"strings"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.Aurora, newAuroraDecoder)
}

var auroraTerminator = []byte{'\n'}

// auroraDecoder decodes an Aurora Cloud Sensor frame: a comma-separated
// line whose fields of interest are, by position, sequence number (index
// 2), ambient/sky/clarity temperatures scaled by 0.01 (indices 3-5), light
// and rain level scaled by 0.1 (indices 6-7), and an alarm code (index 10)
// that may carry a trailing "!..." suffix to be discarded.
type auroraDecoder struct{}

func newAuroraDecoder(Options) Decoder { return auroraDecoder{} }

func (auroraDecoder) Terminator() []byte { return auroraTerminator }

func (auroraDecoder) Decode(line []byte) (telemetry.Data, error) {
	parts := strings.Split(strings.TrimSpace(string(line)), ",")
	if len(parts) <= 10 {
		return nil, fmt.Errorf("decode: aurora line has %d fields, need at least 11", len(parts))
	}

	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("decode: aurora seq %q: %w", parts[2], err)
	}
	ambient, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("decode: aurora ambient temperature %q: %w", parts[3], err)
	}
	sky, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, fmt.Errorf("decode: aurora sky temperature %q: %w", parts[4], err)
	}
	clarity, err := strconv.Atoi(parts[5])
	if err != nil {
		return nil, fmt.Errorf("decode: aurora clarity %q: %w", parts[5], err)
	}
	light, err := strconv.Atoi(parts[6])
	if err != nil {
		return nil, fmt.Errorf("decode: aurora light level %q: %w", parts[6], err)
	}
	rain, err := strconv.Atoi(parts[7])
	if err != nil {
		return nil, fmt.Errorf("decode: aurora rain level %q: %w", parts[7], err)
	}
	alarmField := strings.SplitN(parts[10], "!", 2)[0]
	alarm, err := strconv.Atoi(alarmField)
	if err != nil {
		return nil, fmt.Errorf("decode: aurora alarm %q: %w", alarmField, err)
	}

	return telemetry.Data{
		seq,
		float64(ambient) / 100,
		float64(sky) / 100,
		float64(clarity) / 100,
		0.1 * float64(light),
		0.1 * float64(rain),
		alarm,
	}, nil
}
