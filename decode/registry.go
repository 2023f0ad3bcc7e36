/*Package decode implements one decoder per sensor wire protocol.

Each decoder turns a single line (already split from the transport by the
device supervisor, using the terminator the decoder declares) into a
telemetry.Data record whose positions carry a fixed, sensor-type-specific
meaning.

Decoders never panic and never return an error for a malformed frame caused
by a mid-stream connection (a partial read of a frame already in flight):
such lines decode to a telemetry.Data padded with NaN. Decoders do return an
error for frames that are structurally unparseable once the caller is known
to be synchronized on frame boundaries (too many '=' delimiters, a bad
checksum format, and so on) so the supervisor can log and discard the line
per the error-handling table in the design document.

Factories are registered at package init time, mirroring the way
golaborate's scpi/comm consumers and data-client constructors list their
dependencies explicitly rather than relying on reflection: Register is
called once per decoder from that decoder's own file, and the registry
itself is a read-only lookup after program start.
*/
package decode

import (
	"fmt"
	"sync"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

// Decoder turns one line of wire bytes into a telemetry.Data record.
type Decoder interface {
	// Terminator returns the byte sequence that ends one line on the wire
	// for this sensor type. The device supervisor reads up to and
	// including this sequence before calling Decode.
	Terminator() []byte

	// Decode parses line (with the terminator already stripped) into a
	// telemetry.Data record.
	Decode(line []byte) (telemetry.Data, error)
}

// Options carries the per-device configuration a decoder factory may need,
// e.g. the channel count for a multi-channel temperature reader.
type Options struct {
	NumChannels int
}

// Factory builds a new Decoder instance for one device.
type Factory func(opts Options) Decoder

var (
	mu       sync.RWMutex
	registry = make(map[sensortype.SensorType]Factory)
)

// Register adds a decoder factory to the process-wide registry. It is
// intended to be called from each decoder's package-level init(), never
// after configuration has been loaded.
func Register(t sensortype.SensorType, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[t]; exists {
		panic(fmt.Sprintf("decode: duplicate registration for sensor type %q", t))
	}
	registry[t] = f
}

// New looks up the factory for t and builds a decoder with opts. It returns
// an error if no decoder is registered for t.
func New(t sensortype.SensorType, opts Options) (Decoder, error) {
	mu.RLock()
	f, ok := registry[t]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("decode: no decoder registered for sensor type %q", t)
	}
	return f(opts), nil
}

// defaultTerminator is CRLF, the terminator used by the majority of the
// supported sensor protocols.
var defaultTerminator = []byte{'\r', '\n'}
