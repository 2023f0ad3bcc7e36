package accum

import (
	"fmt"
	"math"

	"github.jpl.nasa.gov/ems/skywatch/statx"
)

// ElectricFieldStrengthReport is the data produced by one
// ElectricFieldStrengthAccumulator report, matching the
// tel_electricFieldStrength topic's statistical fields.
type ElectricFieldStrengthReport struct {
	Timestamp      float64
	Strength       float64
	StrengthStdDev float64
	StrengthMax    float64
}

// ElectricFieldStrengthAccumulator buffers signed field-strength samples
// until num_samples good or bad samples have arrived, then reduces them to
// an ElectricFieldStrengthReport.
type ElectricFieldStrengthAccumulator struct {
	numSamples    int
	timestamp     []float64
	strength      []float64
	numBadSamples int
}

// NewElectricFieldStrengthAccumulator constructs an accumulator that
// reports every numSamples good or bad samples. It panics if numSamples < 2.
func NewElectricFieldStrengthAccumulator(numSamples int) *ElectricFieldStrengthAccumulator {
	if numSamples < 2 {
		panic(fmt.Sprintf("accum: numSamples=%d must be > 1", numSamples))
	}
	return &ElectricFieldStrengthAccumulator{numSamples: numSamples}
}

// AddSample appends a good sample, or increments the bad-sample counter.
func (a *ElectricFieldStrengthAccumulator) AddSample(timestamp, strength float64, isOK bool) {
	if !isOK {
		a.numBadSamples++
		return
	}
	a.timestamp = append(a.timestamp, timestamp)
	a.strength = append(a.strength, strength)
}

// DoReport reports whether enough good or bad samples have accumulated to
// produce a report.
func (a *ElectricFieldStrengthAccumulator) DoReport() bool {
	n := len(a.strength)
	if a.numBadSamples > n {
		n = a.numBadSamples
	}
	return n >= a.numSamples
}

// Clear discards all accumulated samples and resets the bad-sample counter.
func (a *ElectricFieldStrengthAccumulator) Clear() {
	a.timestamp = nil
	a.strength = nil
	a.numBadSamples = 0
}

// GetTopicKwargs reduces the accumulated samples to an
// ElectricFieldStrengthReport and clears the accumulator. The second return
// is false, with a zero report, if DoReport is false.
func (a *ElectricFieldStrengthAccumulator) GetTopicKwargs() (ElectricFieldStrengthReport, bool) {
	switch {
	case len(a.strength) >= a.numSamples:
		mean := statx.Mean(a.strength)
		report := ElectricFieldStrengthReport{
			Timestamp:      a.timestamp[len(a.timestamp)-1],
			Strength:       mean,
			StrengthStdDev: stdDev(a.strength, mean),
			StrengthMax:    statx.MaxAbs(a.strength),
		}
		a.Clear()
		return report, true
	case a.numBadSamples >= a.numSamples:
		timestamp := math.NaN()
		if len(a.timestamp) > 0 {
			timestamp = a.timestamp[len(a.timestamp)-1]
		}
		report := ElectricFieldStrengthReport{
			Timestamp:      timestamp,
			Strength:       math.NaN(),
			StrengthStdDev: math.NaN(),
			StrengthMax:    math.NaN(),
		}
		a.Clear()
		return report, true
	default:
		return ElectricFieldStrengthReport{}, false
	}
}
