package dataclient

import (
	"fmt"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/process"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// processorParams carries the accumulator/debounce parameters a
// controller-protocol data client applies uniformly to whatever processor
// it lazily constructs for an incoming sensor name, mirroring the single
// num_samples/safe_interval/threshold triple the controller-client wire
// schema carries per connection rather than per device.
type processorParams struct {
	NumSamples   int
	SafeInterval time.Duration
	Threshold    float64
}

// newProcessorFor builds the concrete Processor for sensorType, the same
// dispatch a local skywatchd wiring performs when it owns the device
// directly; a controller-protocol client performs it lazily, once per
// sensor name, on that name's first telemetry frame.
func newProcessorFor(sensorType sensortype.SensorType, name, location string, channels int, params processorParams, tp topics.Topics) (process.Processor, error) {
	switch sensorType {
	case sensortype.Temperature:
		return process.NewTemperatureProcessor(process.TemperatureConfig{
			SensorName: name, Location: location, NumChannels: channels, Topics: tp,
		}), nil
	case sensortype.HX85A:
		return process.NewHX85AProcessor(process.HX85AConfig{SensorName: name, Location: location, Topics: tp}), nil
	case sensortype.HX85BA:
		return process.NewHX85BAProcessor(process.HX85BAConfig{SensorName: name, Location: location, Topics: tp}), nil
	case sensortype.Windsonic:
		return process.NewWindsonicProcessor(process.WindsonicConfig{
			SensorName: name, Location: location, NumSamples: params.NumSamples, Topics: tp,
		}), nil
	case sensortype.CSAT3B:
		return process.NewAirTurbulenceProcessor(process.AirTurbulenceConfig{
			SensorName: name, Location: location, NumSamples: params.NumSamples, Topics: tp,
		}), nil
	case sensortype.EFM100C:
		return process.NewEfm100cProcessor(process.Efm100cConfig{
			SensorName: name, Location: location, NumSamples: params.NumSamples,
			SafeInterval: params.SafeInterval, Threshold: params.Threshold, Topics: tp,
		}), nil
	case sensortype.LD250:
		return process.NewLd250Processor(process.Ld250Config{
			SensorName: name, Location: location, SafeInterval: params.SafeInterval, Topics: tp,
		}), nil
	case sensortype.Aurora:
		return process.NewAuroraProcessor(process.AuroraConfig{SensorName: name, Location: location, Topics: tp}), nil
	case sensortype.SPS30:
		return process.NewSps30Processor(process.Sps30Config{SensorName: name, Location: location, Topics: tp}), nil
	default:
		return nil, fmt.Errorf("dataclient: no processor available for sensor type %q", sensorType)
	}
}
