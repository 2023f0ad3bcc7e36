package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.Temperature, newTemperatureDecoder)
}

// temperatureDecoder decodes the multi-channel temperature reader frame
// "C00=ddd.dddd,C01=ddd.dddd,...<CR><LF>". The channel count is fixed at
// construction from the owning DeviceConfig.
type temperatureDecoder struct {
	numChannels int
}

func newTemperatureDecoder(opts Options) Decoder {
	n := opts.NumChannels
	if n <= 0 {
		n = 1
	}
	return &temperatureDecoder{numChannels: n}
}

func (d *temperatureDecoder) Terminator() []byte { return defaultTerminator }

func (d *temperatureDecoder) Decode(line []byte) (telemetry.Data, error) {
	out := make([]float64, d.numChannels)
	for i := range out {
		out[i] = math.NaN()
	}

	fields := strings.Split(string(line), ",")
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.Count(field, "=") > 1 {
			return nil, fmt.Errorf("decode: temperature field %q has more than one '='", field)
		}
		parts := strings.SplitN(field, "=", 2)
		if len(parts) != 2 {
			// No key present: a partial leading field left over from a
			// mid-stream reconnect. Ignore it; the channel it belonged to
			// stays NaN.
			continue
		}
		key, value := parts[0], parts[1]
		if len(key) < 2 || key[0] != 'C' {
			return nil, fmt.Errorf("decode: temperature field %q has an unrecognized channel key", field)
		}
		idx, err := strconv.Atoi(key[1:])
		if err != nil {
			return nil, fmt.Errorf("decode: temperature field %q has a non-numeric channel key: %w", field, err)
		}
		if idx < 0 || idx >= d.numChannels {
			// Channel outside the configured range; ignore.
			continue
		}
		if value == sensortype.DisconnectedValue {
			out[idx] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("decode: temperature field %q has an unparseable value: %w", field, err)
		}
		out[idx] = v
	}

	data := make(telemetry.Data, d.numChannels)
	for i, v := range out {
		data[i] = v
	}
	return data, nil
}
