package process

import (
	"github.jpl.nasa.gov/ems/skywatch/accum"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// WindsonicConfig configures a WindsonicProcessor.
type WindsonicConfig struct {
	SensorName string
	Location   string
	NumSamples int
	Topics     topics.Topics
}

// WindsonicProcessor feeds every 2-D anemometer reading into an
// AirFlowAccumulator and publishes tel_airFlow once it has enough good or
// bad samples to report.
type WindsonicProcessor struct {
	cfg  WindsonicConfig
	accu *accum.AirFlowAccumulator
}

func NewWindsonicProcessor(cfg WindsonicConfig) *WindsonicProcessor {
	return &WindsonicProcessor{cfg: cfg, accu: accum.NewAirFlowAccumulator(cfg.NumSamples)}
}

func (p *WindsonicProcessor) Process(r telemetry.Reading) {
	direction := r.SensorTelemetry.Float(0)
	speed := r.SensorTelemetry.Float(1)
	p.accu.AddSample(r.Timestamp, speed, direction, r.ResponseCode == sensortype.OK)

	report, ok := p.accu.GetTopicKwargs()
	if !ok {
		return
	}
	p.cfg.Topics.TelAirFlow(topics.AirFlow{
		SensorName:      p.cfg.SensorName,
		Timestamp:       report.Timestamp,
		Location:        p.cfg.Location,
		Direction:       report.Direction,
		DirectionStdDev: report.DirectionStdDev,
		Speed:           report.Speed,
		SpeedStdDev:     report.SpeedStdDev,
		MaxSpeed:        report.MaxSpeed,
	})
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: 0,
		ServerStatus: int(r.ResponseCode),
	})
}
