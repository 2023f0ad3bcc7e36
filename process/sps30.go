package process

import (
	"math"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// Sps30Config configures an Sps30Processor.
type Sps30Config struct {
	SensorName string
	Location   string
	Topics     topics.Topics
}

// Sps30Processor populates a particulate-matter topic from the SPS30
// decoder's 19-element reading: five particle sizes, five mass
// concentrations, five number concentrations, and a typical particle size.
// Any response code other than OK, or too short a reading, leaves every
// measurement NaN and the status flag at 1.
type Sps30Processor struct {
	cfg Sps30Config
}

func NewSps30Processor(cfg Sps30Config) *Sps30Processor {
	return &Sps30Processor{cfg: cfg}
}

func (p *Sps30Processor) Process(r telemetry.Reading) {
	isOK := r.ResponseCode == sensortype.OK
	sensorStatus := 0
	if !isOK {
		sensorStatus = 1
	}

	var sizes, massConc, numberConc [5]float64
	for i := range sizes {
		sizes[i] = math.NaN()
		massConc[i] = math.NaN()
		numberConc[i] = math.NaN()
	}
	typicalSize := math.NaN()

	if isOK && len(r.SensorTelemetry) >= 19 {
		for i := 0; i < 5; i++ {
			sizes[i] = r.SensorTelemetry.Float(2 + i)
			massConc[i] = r.SensorTelemetry.Float(7 + i)
			numberConc[i] = r.SensorTelemetry.Float(12 + i)
		}
		typicalSize = r.SensorTelemetry.Float(17)
	}

	p.cfg.Topics.TelParticulateMatter(topics.ParticulateMatter{
		SensorName:           p.cfg.SensorName,
		Timestamp:            r.Timestamp,
		ParticleSizes:        sizes,
		MassConcentrations:   massConc,
		NumberConcentrations: numberConc,
		TypicalParticleSize:  typicalSize,
		Location:             p.cfg.Location,
	})
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: sensorStatus,
		ServerStatus: int(r.ResponseCode),
	})
}
