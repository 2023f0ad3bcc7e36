package process

import (
	"math"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// hx85Config is shared by HX85AProcessor and HX85BAProcessor: both publish
// the same set of humidity-family topics, differing only in which decoded
// fields feed them and whether pressure is present.
type hx85Config struct {
	SensorName string
	Location   string
	Topics     topics.Topics
}

// writeHumidityEtc is the common topic-writing tail both HX85 processors
// use: each of dewPoint/pressure/relativeHumidity/temperature is written as
// its own topic only when the caller supplies a value for it, matching the
// original base class's "write what this sensor model actually measures"
// shape (HX85A has no pressure channel; HX85BA has no directly transmitted
// dew point channel, only temperature/RH it derives dew point from).
func writeHumidityEtc(cfg hx85Config, timestamp float64, dewPoint, pressurePa, relativeHumidity, temperature *float64, isOK bool) {
	if dewPoint != nil {
		v := *dewPoint
		if !isOK {
			v = math.NaN()
		}
		cfg.Topics.TelDewPoint(topics.DewPoint{SensorName: cfg.SensorName, Timestamp: timestamp, DewPoint: v, Location: cfg.Location})
	}
	if pressurePa != nil {
		v := math.NaN()
		if isOK {
			v = *pressurePa
		}
		cfg.Topics.TelPressure(topics.Pressure{SensorName: cfg.SensorName, Timestamp: timestamp, Pressure: []float64{v}, NumChannels: 1, Location: cfg.Location})
	}
	if relativeHumidity != nil {
		v := *relativeHumidity
		if !isOK {
			v = math.NaN()
		}
		cfg.Topics.TelRelativeHumidity(topics.RelativeHumidity{SensorName: cfg.SensorName, Timestamp: timestamp, RelativeHumidity: v, Location: cfg.Location})
	}
	if temperature != nil {
		v := math.NaN()
		if isOK {
			v = *temperature
		}
		cfg.Topics.TelTemperature(topics.Temperature{SensorName: cfg.SensorName, Timestamp: timestamp, Temperature: []float64{v}, NumChannels: 1, Location: cfg.Location})
	}
}

func f64p(v float64) *float64 { return &v }

// HX85AConfig configures an HX85AProcessor.
type HX85AConfig struct {
	SensorName string
	Location   string
	Topics     topics.Topics
}

// HX85AProcessor publishes the Omega HX85A's relative humidity, air
// temperature, and transmitted dew point as their respective topics.
type HX85AProcessor struct {
	cfg hx85Config
}

func NewHX85AProcessor(cfg HX85AConfig) *HX85AProcessor {
	return &HX85AProcessor{cfg: hx85Config{SensorName: cfg.SensorName, Location: cfg.Location, Topics: cfg.Topics}}
}

func (p *HX85AProcessor) Process(r telemetry.Reading) {
	isOK := r.ResponseCode == sensortype.OK
	rh := r.SensorTelemetry.Float(0)
	temp := r.SensorTelemetry.Float(1)
	dp := r.SensorTelemetry.Float(2)
	writeHumidityEtc(p.cfg, r.Timestamp, f64p(dp), nil, f64p(rh), f64p(temp), isOK)
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{SensorName: p.cfg.SensorName, SensorStatus: 0, ServerStatus: int(r.ResponseCode)})
}

// HX85BAConfig configures an HX85BAProcessor.
type HX85BAConfig struct {
	SensorName string
	Location   string
	Topics     topics.Topics
}

// HX85BAProcessor publishes the Omega HX85BA's relative humidity, air
// temperature, and barometric pressure (converted from millibar to Pascal)
// as their respective topics; dew point is derived at decode time via the
// Magnus formula rather than transmitted on the wire.
type HX85BAProcessor struct {
	cfg hx85Config
}

func NewHX85BAProcessor(cfg HX85BAConfig) *HX85BAProcessor {
	return &HX85BAProcessor{cfg: hx85Config{SensorName: cfg.SensorName, Location: cfg.Location, Topics: cfg.Topics}}
}

func (p *HX85BAProcessor) Process(r telemetry.Reading) {
	isOK := r.ResponseCode == sensortype.OK
	rh := r.SensorTelemetry.Float(0)
	temp := r.SensorTelemetry.Float(1)
	pressureMbar := r.SensorTelemetry.Float(2)
	dp := r.SensorTelemetry.Float(3)
	pressurePa := pressureMbar * sensortype.PascalsPerMillibar
	writeHumidityEtc(p.cfg, r.Timestamp, f64p(dp), f64p(pressurePa), f64p(rh), f64p(temp), isOK)
	p.cfg.Topics.EvtSensorStatus(topics.SensorStatus{SensorName: p.cfg.SensorName, SensorStatus: 0, ServerStatus: int(r.ResponseCode)})
}
