package accum

import (
	"fmt"
	"math"

	"github.jpl.nasa.gov/ems/skywatch/statx"
)

// AirTurbulenceReport is the data produced by one AirTurbulenceAccumulator
// report, matching the tel_airTurbulence topic's statistical fields.
type AirTurbulenceReport struct {
	Timestamp              float64
	Speed                  [3]float64
	SpeedStdDev            [3]float64
	SpeedMagnitude         float64
	SpeedMaxMagnitude      float64
	SonicTemperature       float64
	SonicTemperatureStdDev float64
}

// AirTurbulenceAccumulator buffers 3-D anemometer samples (a velocity
// 3-vector and sonic temperature) until num_samples good or bad samples
// have arrived, then reduces them to an AirTurbulenceReport.
type AirTurbulenceAccumulator struct {
	numSamples    int
	timestamp     []float64
	ux, uy, uz    []float64
	sonicTemp     []float64
	numBadSamples int
}

// NewAirTurbulenceAccumulator constructs an accumulator that reports every
// numSamples good or bad samples. It panics if numSamples < 2.
func NewAirTurbulenceAccumulator(numSamples int) *AirTurbulenceAccumulator {
	if numSamples < 2 {
		panic(fmt.Sprintf("accum: numSamples=%d must be > 1", numSamples))
	}
	return &AirTurbulenceAccumulator{numSamples: numSamples}
}

// AddSample appends a good sample, or increments the bad-sample counter.
func (a *AirTurbulenceAccumulator) AddSample(timestamp float64, speed [3]float64, sonicTemperature float64, isOK bool) {
	if !isOK {
		a.numBadSamples++
		return
	}
	a.timestamp = append(a.timestamp, timestamp)
	a.ux = append(a.ux, speed[0])
	a.uy = append(a.uy, speed[1])
	a.uz = append(a.uz, speed[2])
	a.sonicTemp = append(a.sonicTemp, sonicTemperature)
}

// DoReport reports whether enough good or bad samples have accumulated to
// produce a report.
func (a *AirTurbulenceAccumulator) DoReport() bool {
	n := len(a.ux)
	if a.numBadSamples > n {
		n = a.numBadSamples
	}
	return n >= a.numSamples
}

// Clear discards all accumulated samples and resets the bad-sample counter.
func (a *AirTurbulenceAccumulator) Clear() {
	a.timestamp = nil
	a.ux, a.uy, a.uz = nil, nil, nil
	a.sonicTemp = nil
	a.numBadSamples = 0
}

func magnitude(ux, uy, uz float64) float64 {
	return math.Sqrt(ux*ux + uy*uy + uz*uz)
}

// GetTopicKwargs reduces the accumulated samples to an AirTurbulenceReport
// and clears the accumulator. The second return is false, with a zero
// report, if DoReport is false.
func (a *AirTurbulenceAccumulator) GetTopicKwargs() (AirTurbulenceReport, bool) {
	switch {
	case len(a.ux) >= a.numSamples:
		report := AirTurbulenceReport{
			Timestamp: a.timestamp[len(a.timestamp)-1],
		}
		report.Speed[0], report.SpeedStdDev[0] = statx.MedianStdDev(a.ux)
		report.Speed[1], report.SpeedStdDev[1] = statx.MedianStdDev(a.uy)
		report.Speed[2], report.SpeedStdDev[2] = statx.MedianStdDev(a.uz)

		magnitudes := make([]float64, len(a.ux))
		for i := range a.ux {
			magnitudes[i] = magnitude(a.ux[i], a.uy[i], a.uz[i])
		}
		report.SpeedMagnitude = statx.Mean(magnitudes)
		report.SpeedMaxMagnitude = statx.Max(magnitudes)
		report.SonicTemperature, report.SonicTemperatureStdDev = statx.Mean(a.sonicTemp), stdDev(a.sonicTemp, statx.Mean(a.sonicTemp))
		a.Clear()
		return report, true
	case a.numBadSamples >= a.numSamples:
		timestamp := math.NaN()
		if len(a.timestamp) > 0 {
			timestamp = a.timestamp[len(a.timestamp)-1]
		}
		report := AirTurbulenceReport{
			Timestamp:              timestamp,
			Speed:                  [3]float64{math.NaN(), math.NaN(), math.NaN()},
			SpeedStdDev:            [3]float64{math.NaN(), math.NaN(), math.NaN()},
			SpeedMagnitude:         math.NaN(),
			SpeedMaxMagnitude:      math.NaN(),
			SonicTemperature:       math.NaN(),
			SonicTemperatureStdDev: math.NaN(),
		}
		a.Clear()
		return report, true
	default:
		return AirTurbulenceReport{}, false
	}
}

// stdDev is the ordinary (non-robust) sample standard deviation, used for
// sonic temperature where the original reports a simple mean/std pair
// rather than a quantile-based robust estimate.
func stdDev(data []float64, mean float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	var sumSq float64
	for _, v := range data {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(data)))
}
