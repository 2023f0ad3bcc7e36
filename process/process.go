/*Package process implements one telemetry processor per sensor wire
protocol: each turns a telemetry.Reading into zero or more writes against
the topics.Topics surface, the same division of labor as ts_ess_common's
processor package (TemperatureProcessor, WindsonicProcessor,
Efm100cProcessor, and so on), translated into Go's "narrow interface,
small struct" idiom already used for comm and decode.
*/
package process

import "github.jpl.nasa.gov/ems/skywatch/telemetry"

// Processor consumes one telemetry.Reading at a time. Implementations
// never return an error; a processor that cannot make sense of a reading
// publishes a status event carrying the problem instead, mirroring
// the error-handling table's treatment of processor-level failures.
type Processor interface {
	Process(r telemetry.Reading)
}
