package process

import (
	"math"
	"strings"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// TemperatureConfig configures a TemperatureProcessor.
type TemperatureConfig struct {
	SensorName string
	Location   string
	// NumChannels is the number of channels this device actually reports.
	NumChannels int
	// TopicWidth is the fixed width of the published temperatureItem array.
	// It defaults to NumChannels when zero; a wider value lets several
	// differently-sized readers share one topic definition.
	TopicWidth int
	Topics     topics.Topics
}

// TemperatureProcessor builds the fixed-width temperatureItem array for a
// multi-channel RTD reader: good channels pass through, channels whose
// comma-separated location token reads "unused" (case-insensitively) are
// forced to NaN, and the remainder of a topic wider than NumChannels stays
// NaN. On any non-OK response code every element is NaN.
type TemperatureProcessor struct {
	cfg TemperatureConfig
}

// NewTemperatureProcessor constructs a TemperatureProcessor.
func NewTemperatureProcessor(cfg TemperatureConfig) *TemperatureProcessor {
	if cfg.TopicWidth <= 0 {
		cfg.TopicWidth = cfg.NumChannels
	}
	return &TemperatureProcessor{cfg: cfg}
}

func (p *TemperatureProcessor) Process(r telemetry.Reading) {
	temperature := make([]float64, p.cfg.TopicWidth)
	for i := range temperature {
		temperature[i] = math.NaN()
	}

	if r.ResponseCode == sensortype.OK {
		for i := 0; i < p.cfg.NumChannels && i < p.cfg.TopicWidth; i++ {
			temperature[i] = r.SensorTelemetry.Float(i)
		}
	}

	for i, token := range strings.Split(p.cfg.Location, ",") {
		if i >= len(temperature) {
			break
		}
		if strings.EqualFold(strings.TrimSpace(token), "unused") {
			temperature[i] = math.NaN()
		}
	}

	p.cfg.Topics.TelTemperature(topics.Temperature{
		SensorName:  p.cfg.SensorName,
		Timestamp:   r.Timestamp,
		Temperature: temperature,
		NumChannels: p.cfg.NumChannels,
		Location:    p.cfg.Location,
	})
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{
		SensorName:   p.cfg.SensorName,
		SensorStatus: 0,
		ServerStatus: int(r.ResponseCode),
	})
}
