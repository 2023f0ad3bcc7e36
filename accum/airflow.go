/*Package accum implements the three sample accumulators that sit between a
telemetry processor and its published topic: AirFlowAccumulator,
AirTurbulenceAccumulator, and ElectricFieldStrengthAccumulator. Each buffers
samples until either enough good ones or enough bad ones have arrived, then
reduces the buffer to summary statistics via package statx and clears
itself. This mirrors golaborate's preference for small, single-purpose
stateful types (e.g. comm.Pool) over a shared generic aggregator.
*/
package accum

import (
	"fmt"
	"math"

	"github.jpl.nasa.gov/ems/skywatch/statx"
)

// AirFlowReport is the data produced by one AirFlowAccumulator report,
// matching the tel_airFlow topic's statistical fields.
type AirFlowReport struct {
	Timestamp       float64
	Direction       float64
	DirectionStdDev float64
	Speed           float64
	SpeedStdDev     float64
	MaxSpeed        float64
}

// AirFlowAccumulator buffers 2-D anemometer samples (speed, direction)
// until num_samples good or bad samples have arrived, then reduces them to
// an AirFlowReport.
type AirFlowAccumulator struct {
	numSamples    int
	timestamp     []float64
	speed         []float64
	direction     []float64
	numBadSamples int
}

// NewAirFlowAccumulator constructs an accumulator that reports every
// numSamples good or bad samples. It panics if numSamples < 2, matching the
// invariant the original implementation enforces at construction.
func NewAirFlowAccumulator(numSamples int) *AirFlowAccumulator {
	if numSamples < 2 {
		panic(fmt.Sprintf("accum: numSamples=%d must be > 1", numSamples))
	}
	return &AirFlowAccumulator{numSamples: numSamples}
}

// AddSample appends a good sample, or increments the bad-sample counter.
func (a *AirFlowAccumulator) AddSample(timestamp, speed, direction float64, isOK bool) {
	if !isOK {
		a.numBadSamples++
		return
	}
	a.timestamp = append(a.timestamp, timestamp)
	a.speed = append(a.speed, speed)
	a.direction = append(a.direction, direction)
}

// DoReport reports whether enough good or bad samples have accumulated to
// produce a report.
func (a *AirFlowAccumulator) DoReport() bool {
	n := len(a.speed)
	if a.numBadSamples > n {
		n = a.numBadSamples
	}
	return n >= a.numSamples
}

// Clear discards all accumulated samples and resets the bad-sample counter.
func (a *AirFlowAccumulator) Clear() {
	a.timestamp = nil
	a.speed = nil
	a.direction = nil
	a.numBadSamples = 0
}

// GetTopicKwargs reduces the accumulated samples to an AirFlowReport and
// clears the accumulator. The second return is false, with a zero report,
// if DoReport is false.
func (a *AirFlowAccumulator) GetTopicKwargs() (AirFlowReport, bool) {
	switch {
	case len(a.speed) >= a.numSamples:
		report := AirFlowReport{
			Timestamp: a.timestamp[len(a.timestamp)-1],
			MaxSpeed:  statx.Max(a.speed),
		}
		report.Direction, report.DirectionStdDev = statx.CircularMeanStdDev(a.direction)
		report.Speed, report.SpeedStdDev = statx.MedianStdDev(a.speed)
		a.Clear()
		return report, true
	case a.numBadSamples >= a.numSamples:
		timestamp := math.NaN()
		if len(a.timestamp) > 0 {
			timestamp = a.timestamp[len(a.timestamp)-1]
		}
		report := AirFlowReport{
			Timestamp:       timestamp,
			Direction:       -1,
			DirectionStdDev: -1,
			Speed:           math.NaN(),
			SpeedStdDev:     math.NaN(),
			MaxSpeed:        math.NaN(),
		}
		a.Clear()
		return report, true
	default:
		return AirFlowReport{}, false
	}
}
