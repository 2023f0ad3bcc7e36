/*Package controller implements the line-delimited JSON protocol a remote
aggregator speaks over a single TCP connection: a client issues one
command at a time and receives either a command reply or an interleaved
stream of telemetry frames, matching golaborate's convention of a small,
explicit wire struct per protocol rather than a generic RPC framework.
*/
package controller

import (
	"encoding/json"
	"fmt"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// Command names a client may send. These are the only values the server
// dispatches on; anything else is an error.
type Command string

const (
	CmdConfigure  Command = "configure"
	CmdStart      Command = "start"
	CmdStop       Command = "stop"
	CmdDisconnect Command = "disconnect"
	CmdExit       Command = "exit"
)

// Request is a client-to-server frame.
type Request struct {
	Command    Command         `json:"command"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// ConfigureParameters is the body of a configure request: the same device
// array the device-configuration file carries at rest.
type ConfigureParameters struct {
	Devices json.RawMessage `json:"devices"`
}

// TelemetryFrame is the wire shape of one decoded reading, forwarded
// verbatim from a server-side supervisor callback to the client.
type TelemetryFrame struct {
	Name            string                  `json:"name"`
	Timestamp       float64                 `json:"timestamp"`
	ResponseCode    sensortype.ResponseCode `json:"response_code"`
	SensorTelemetry []any                   `json:"sensor_telemetry"`
}

// Reply is a server-to-client frame: exactly one of Response or Telemetry
// is populated, never both, matching the frame model's "either/or" shape.
type Reply struct {
	Response  *sensortype.ResponseCode `json:"response,omitempty"`
	Telemetry *TelemetryFrame          `json:"telemetry,omitempty"`
}

// IsResponse reports whether this reply carries a command response.
func (r Reply) IsResponse() bool { return r.Response != nil }

// IsTelemetry reports whether this reply carries a telemetry frame.
func (r Reply) IsTelemetry() bool { return r.Telemetry != nil }

func responseReply(code sensortype.ResponseCode) Reply {
	c := code
	return Reply{Response: &c}
}

func telemetryReply(f TelemetryFrame) Reply {
	return Reply{Telemetry: &f}
}

// ErrUnknownCommand is returned by the server for a command name outside
// the closed set above.
type ErrUnknownCommand struct {
	Command Command
}

func (e ErrUnknownCommand) Error() string {
	return fmt.Sprintf("controller: unknown command %q", e.Command)
}
