package supervisor

import "time"

// nowUnix returns the current time as fractional Unix seconds, the
// timestamp unit every telemetry.Reading and topic payload uses.
func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
