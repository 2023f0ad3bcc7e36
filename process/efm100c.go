package process

import (
	"math"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/accum"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/timer"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// Efm100cConfig configures an Efm100cProcessor.
type Efm100cConfig struct {
	SensorName   string
	Location     string
	NumSamples   int
	SafeInterval time.Duration
	Threshold    float64
	Topics       topics.Topics
}

// Efm100cProcessor feeds every Boltek EFM-100C field-strength reading into
// an ElectricFieldStrengthAccumulator. When a report's strengthMax exceeds
// the configured threshold it (re)arms a single-shot timer of SafeInterval
// and emits evt_highElectricField with the threshold value. Every report at
// or below threshold while that timer is not counting down (it never armed,
// or it already elapsed) emits evt_highElectricField with strength=NaN,
// signalling "cleared".
type Efm100cProcessor struct {
	cfg   Efm100cConfig
	accu  *accum.ElectricFieldStrengthAccumulator
	timer *timer.SingleShot
}

func NewEfm100cProcessor(cfg Efm100cConfig) *Efm100cProcessor {
	return &Efm100cProcessor{
		cfg:   cfg,
		accu:  accum.NewElectricFieldStrengthAccumulator(cfg.NumSamples),
		timer: timer.New(),
	}
}

func (p *Efm100cProcessor) Process(r telemetry.Reading) {
	strength := r.SensorTelemetry.Float(0)
	fault := r.SensorTelemetry.Int(1)
	isOK := fault == 0 && r.ResponseCode == sensortype.OK
	p.accu.AddSample(r.Timestamp, strength, isOK)

	report, ok := p.accu.GetTopicKwargs()
	if !ok {
		return
	}

	if math.Abs(report.StrengthMax) > p.cfg.Threshold {
		p.timer.Arm(p.cfg.SafeInterval)
		p.cfg.Topics.EvtHighElectricField(topics.HighElectricField{
			SensorName: p.cfg.SensorName,
			Strength:   p.cfg.Threshold,
		})
	} else if p.timer.State() != timer.Armed {
		// Not currently counting down a safe interval: either it never
		// armed, or it already elapsed. Either way the field is "safe",
		// republished on every report until a new high reading rearms it.
		p.cfg.Topics.EvtHighElectricField(topics.HighElectricField{
			SensorName: p.cfg.SensorName,
			Strength:   math.NaN(),
		})
	}

	p.cfg.Topics.TelElectricFieldStrength(topics.ElectricFieldStrength{
		SensorName:     p.cfg.SensorName,
		Timestamp:      report.Timestamp,
		Location:       p.cfg.Location,
		Strength:       report.Strength,
		StrengthStdDev: report.StrengthStdDev,
		StrengthMax:    report.StrengthMax,
	})
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: fault,
		ServerStatus: int(r.ResponseCode),
	})
}
