package process

import (
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// AuroraConfig configures an AuroraProcessor.
type AuroraConfig struct {
	SensorName string
	Location   string
	Topics     topics.Topics
}

// AuroraProcessor republishes the Aurora Cloud Sensor's ambient, sky, and
// clarity temperatures as a three-element tel_temperature reading, and its
// alarm code as the sensor-status event's sensorStatus field. The light and
// rain level fields the decoder also extracts have no topic of their own.
type AuroraProcessor struct {
	cfg AuroraConfig
}

func NewAuroraProcessor(cfg AuroraConfig) *AuroraProcessor {
	return &AuroraProcessor{cfg: cfg}
}

func (p *AuroraProcessor) Process(r telemetry.Reading) {
	ambient := r.SensorTelemetry.Float(1)
	sky := r.SensorTelemetry.Float(2)
	clarity := r.SensorTelemetry.Float(3)
	alarm := r.SensorTelemetry.Int(6)

	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: alarm,
		ServerStatus: int(r.ResponseCode),
	})
	p.cfg.Topics.TelTemperature(topics.Temperature{
		SensorName:  p.cfg.SensorName,
		Timestamp:   r.Timestamp,
		Temperature: []float64{ambient, sky, clarity},
		NumChannels: 3,
		Location:    p.cfg.Location,
	})
}
