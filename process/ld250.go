package process

import (
	"math"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/timer"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

const (
	ld250StatusPrefix = "WIMST"
	ld250StrikePrefix = "WIMLI"
	ld250NoisePrefix  = "WIMLN"
)

// Ld250Config configures an Ld250Processor.
type Ld250Config struct {
	SensorName   string
	Location     string
	SafeInterval time.Duration
	Topics       topics.Topics
}

// Ld250Processor dispatches on the LD-250's decoded frame prefix: a strike
// frame (re)arms a single-shot "cleared" timer and emits evt_lightningStrike
// immediately; a status or noise frame publishes tel_lightningStrikeStatus.
// After every frame, if the "cleared" timer is not currently counting down
// (it never armed, or it already elapsed), evt_lightningStrike is republished
// with {+Inf, +Inf, 0} signalling "no recent strike" — this fires on every
// such frame, not just the first, matching the level-triggered semantics of
// the state it mirrors.
type Ld250Processor struct {
	cfg   Ld250Config
	timer *timer.SingleShot
}

func NewLd250Processor(cfg Ld250Config) *Ld250Processor {
	return &Ld250Processor{cfg: cfg, timer: timer.New()}
}

func (p *Ld250Processor) Process(r telemetry.Reading) {
	prefix := r.SensorTelemetry.Str(0)
	switch prefix {
	case ld250StrikePrefix:
		p.processStrike(r)
	case ld250NoisePrefix, ld250StatusPrefix:
		p.processStatusOrNoise(r, prefix)
	}

	if p.timer.State() != timer.Armed {
		p.cfg.Topics.EvtLightningStrike(topics.LightningStrike{
			SensorName:          p.cfg.SensorName,
			CorrectedDistance:   math.Inf(1),
			UncorrectedDistance: math.Inf(1),
			Bearing:             0,
		})
	}
}

func (p *Ld250Processor) processStrike(r telemetry.Reading) {
	p.timer.Arm(p.cfg.SafeInterval)
	p.cfg.Topics.EvtLightningStrike(topics.LightningStrike{
		SensorName:          p.cfg.SensorName,
		CorrectedDistance:   r.SensorTelemetry.Float(1),
		UncorrectedDistance: r.SensorTelemetry.Float(2),
		Bearing:             r.SensorTelemetry.Float(3),
	})
}

func (p *Ld250Processor) processStatusOrNoise(r telemetry.Reading, prefix string) {
	isOK := r.ResponseCode == 0
	sensorStatus := 0

	closeStrikeRate := math.NaN()
	totalStrikeRate := math.NaN()
	closeAlarmStatus := 0
	severeAlarmStatus := 0
	heading := math.NaN()

	if prefix == ld250NoisePrefix {
		sensorStatus = 1
		isOK = false
	}
	if isOK {
		closeStrikeRate = r.SensorTelemetry.Float(1)
		totalStrikeRate = r.SensorTelemetry.Float(2)
		if r.SensorTelemetry.Int(3) == 0 {
			closeAlarmStatus = 1
		}
		if r.SensorTelemetry.Int(4) == 0 {
			severeAlarmStatus = 1
		}
		heading = r.SensorTelemetry.Float(5)
	}

	p.cfg.Topics.TelLightningStrikeStatus(topics.LightningStrikeStatus{
		SensorName:        p.cfg.SensorName,
		Timestamp:         r.Timestamp,
		CloseStrikeRate:   closeStrikeRate,
		TotalStrikeRate:   totalStrikeRate,
		CloseAlarmStatus:  closeAlarmStatus,
		SevereAlarmStatus: severeAlarmStatus,
		Heading:           heading,
		Location:          p.cfg.Location,
	})
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: sensorStatus,
		ServerStatus: int(r.ResponseCode),
	})
}
