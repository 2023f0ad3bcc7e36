// Package telemetry defines the ephemeral record that flows from a decoder,
// through a device supervisor, to a telemetry processor.
package telemetry

import (
	"math"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// Value is one scalar in a decoded reading: a float64, an int, or a string.
// Decoders never leak anything else into a Data slice.
type Value = any

// Data is the ordered sequence of typed scalars a decoder produces from one
// line of wire bytes. Semantics of each position are defined per sensor
// type; see the decode package.
type Data []Value

// Float returns Data[i] as a float64, or NaN if the index is out of range
// or the value is not numeric.
func (d Data) Float(i int) float64 {
	if i < 0 || i >= len(d) {
		return math.NaN()
	}
	switch v := d[i].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return math.NaN()
	}
}

// Int returns Data[i] as an int, or 0 if the index is out of range or the
// value is not an int.
func (d Data) Int(i int) int {
	if i < 0 || i >= len(d) {
		return 0
	}
	switch v := d[i].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Str returns Data[i] as a string, or "" if the index is out of range or
// the value is not a string.
func (d Data) Str(i int) string {
	if i < 0 || i >= len(d) {
		return ""
	}
	if v, ok := d[i].(string); ok {
		return v
	}
	return ""
}

// NaNs returns a Data slice of n NaN float64 values, the standard padding
// used when a decoder cannot populate every position of a fixed-width frame.
func NaNs(n int) Data {
	out := make(Data, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Reading is the record emitted by the supervisor/decoder pair for a single
// line read from a device, and consumed by exactly one telemetry processor.
type Reading struct {
	SensorName      string
	Timestamp       float64
	ResponseCode    sensortype.ResponseCode
	SensorTelemetry Data
}
