package daemon

import (
	"fmt"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/process"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// newProcessorFor builds the concrete Processor for a locally-owned device,
// the same per-sensor-type dispatch dataclient's controller/TCP-sensor
// variants perform, but reading num_samples/safe_interval/threshold off the
// device entry itself rather than a connection-wide default.
func newProcessorFor(dev config.Device, tp topics.Topics) (process.Processor, error) {
	safeInterval := time.Duration(dev.SafeInterval * float64(time.Second))
	switch dev.SensorType {
	case sensortype.Temperature:
		return process.NewTemperatureProcessor(process.TemperatureConfig{
			SensorName: dev.Name, Location: dev.Location, NumChannels: dev.Channels, Topics: tp,
		}), nil
	case sensortype.HX85A:
		return process.NewHX85AProcessor(process.HX85AConfig{SensorName: dev.Name, Location: dev.Location, Topics: tp}), nil
	case sensortype.HX85BA:
		return process.NewHX85BAProcessor(process.HX85BAConfig{SensorName: dev.Name, Location: dev.Location, Topics: tp}), nil
	case sensortype.Windsonic:
		return process.NewWindsonicProcessor(process.WindsonicConfig{
			SensorName: dev.Name, Location: dev.Location, NumSamples: dev.NumSamples, Topics: tp,
		}), nil
	case sensortype.CSAT3B:
		return process.NewAirTurbulenceProcessor(process.AirTurbulenceConfig{
			SensorName: dev.Name, Location: dev.Location, NumSamples: dev.NumSamples, Topics: tp,
		}), nil
	case sensortype.EFM100C:
		return process.NewEfm100cProcessor(process.Efm100cConfig{
			SensorName: dev.Name, Location: dev.Location, NumSamples: dev.NumSamples,
			SafeInterval: safeInterval, Threshold: dev.Threshold, Topics: tp,
		}), nil
	case sensortype.LD250:
		return process.NewLd250Processor(process.Ld250Config{
			SensorName: dev.Name, Location: dev.Location, SafeInterval: safeInterval, Topics: tp,
		}), nil
	case sensortype.Aurora:
		return process.NewAuroraProcessor(process.AuroraConfig{SensorName: dev.Name, Location: dev.Location, Topics: tp}), nil
	case sensortype.SPS30:
		return process.NewSps30Processor(process.Sps30Config{SensorName: dev.Name, Location: dev.Location, Topics: tp}), nil
	default:
		return nil, fmt.Errorf("daemon: no processor available for sensor type %q", dev.SensorType)
	}
}
