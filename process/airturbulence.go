package process

import (
	"github.jpl.nasa.gov/ems/skywatch/accum"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// AirTurbulenceConfig configures an AirTurbulenceProcessor.
type AirTurbulenceConfig struct {
	SensorName string
	Location   string
	NumSamples int
	Topics     topics.Topics
}

// AirTurbulenceProcessor feeds every CSAT3B 3-D anemometer reading into an
// AirTurbulenceAccumulator. A sample counts as good only if the decoder's
// diagnostic word is 0 and the reading's response code is OK; the
// diagnostic word is also republished verbatim as the sensor-status event's
// sensorStatus field once the accumulator reports.
type AirTurbulenceProcessor struct {
	cfg  AirTurbulenceConfig
	accu *accum.AirTurbulenceAccumulator
}

func NewAirTurbulenceProcessor(cfg AirTurbulenceConfig) *AirTurbulenceProcessor {
	return &AirTurbulenceProcessor{cfg: cfg, accu: accum.NewAirTurbulenceAccumulator(cfg.NumSamples)}
}

func (p *AirTurbulenceProcessor) Process(r telemetry.Reading) {
	isOK := r.ResponseCode == sensortype.OK
	sensorStatus := int(r.ResponseCode)
	if len(r.SensorTelemetry) >= 5 {
		diag := r.SensorTelemetry.Int(4)
		isOK = diag == 0 && r.ResponseCode == sensortype.OK
		sensorStatus = diag
	}

	speed := [3]float64{r.SensorTelemetry.Float(0), r.SensorTelemetry.Float(1), r.SensorTelemetry.Float(2)}
	sonicTemp := r.SensorTelemetry.Float(3)
	p.accu.AddSample(r.Timestamp, speed, sonicTemp, isOK)

	report, ok := p.accu.GetTopicKwargs()
	if !ok {
		return
	}
	p.cfg.Topics.TelAirTurbulence(topics.AirTurbulence{
		SensorName:             p.cfg.SensorName,
		Timestamp:              report.Timestamp,
		Location:               p.cfg.Location,
		Speed:                  report.Speed,
		SpeedMagnitude:         report.SpeedMagnitude,
		SpeedMaxMagnitude:      report.SpeedMaxMagnitude,
		SpeedStdDev:            report.SpeedStdDev,
		SonicTemperature:       report.SonicTemperature,
		SonicTemperatureStdDev: report.SonicTemperatureStdDev,
	})
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: sensorStatus,
		ServerStatus: int(r.ResponseCode),
	})
}
