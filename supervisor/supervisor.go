/*Package supervisor drives a single sensor transport end-to-end: open the
comm.Device, read lines through the configured decode.Decoder, and hand
each decoded telemetry.Reading to a callback, until told to stop.

The shape follows comm.RemoteDevice's open/close lifecycle in the reference
stack, generalized with a background read loop and a cooperative shutdown
path: Suspensions only happen at line reads, the error-sleep, and the
callback invocation, so Stop's cancellation is always observed at one of
those three points.
*/
package supervisor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/decode"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

// Callback receives one reading per successfully or unsuccessfully decoded
// line. It must not block for long; the read loop does not proceed to the
// next line until it returns.
type Callback func(telemetry.Reading)

// Config is everything a supervisor needs to own one transport.
type Config struct {
	SensorName string
	Device     *comm.Device
	Decoder    decode.Decoder
	Callback   Callback
	Logger     *log.Logger

	// ReadTimeout bounds a single line read.
	ReadTimeout time.Duration
	// ConnectTimeout bounds the initial transport acquisition.
	ConnectTimeout time.Duration
	// StopGrace is how long Close waits for the read loop to notice
	// cancellation before it force-releases the transport.
	StopGrace time.Duration
	// ErrorSleep is how long the loop pauses after an injected device
	// error state (simulators only) before emitting the error reading.
	ErrorSleep time.Duration
}

// ErrorSource, when non-nil, is polled once per loop iteration; when it
// returns true the supervisor behaves as if the device reported a hardware
// fault: it sleeps ErrorSleep and emits a DeviceReadError reading instead of
// attempting a read. This is the hook simulators use to inject the "error
// state" described in the design; production devices leave it nil.
type Supervisor struct {
	cfg Config

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	ErrorSource func() bool
}

// New constructs a Supervisor. Open must be called before it does anything.
func New(cfg Config) *Supervisor {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 2 * time.Second
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.StopGrace <= 0 {
		cfg.StopGrace = 2 * time.Second
	}
	if cfg.ErrorSleep <= 0 {
		cfg.ErrorSleep = time.Second
	}
	return &Supervisor{cfg: cfg}
}

// Open acquires the transport and starts the background read loop.
func (s *Supervisor) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if err := s.cfg.Device.Open(s.cfg.ConnectTimeout); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true
	go s.loop(ctx)
	return nil
}

// Close requests shutdown, waits up to StopGrace for the read loop to exit
// cleanly, then releases the transport regardless.
func (s *Supervisor) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(s.cfg.StopGrace):
		s.cfg.Logger.Printf("supervisor: %s: read loop did not exit within grace period, force-closing transport", s.cfg.SensorName)
	}
	return s.cfg.Device.Close()
}

func (s *Supervisor) loop(ctx context.Context) {
	defer close(s.done)
	terminator := s.cfg.Decoder.Terminator()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if s.ErrorSource != nil && s.ErrorSource() {
			select {
			case <-time.After(s.cfg.ErrorSleep):
			case <-ctx.Done():
				return
			}
			s.emitErrorReading(terminator)
			continue
		}

		line, err := s.cfg.Device.ReadLine(terminator, s.cfg.ReadTimeout)
		if err != nil {
			s.cfg.Logger.Printf("supervisor: %s: read error: %v", s.cfg.SensorName, err)
			continue
		}

		data, err := s.cfg.Decoder.Decode(line)
		if err != nil {
			s.cfg.Logger.Printf("supervisor: %s: discarding unparseable line: %v", s.cfg.SensorName, err)
			continue
		}
		s.cfg.Callback(telemetry.Reading{
			SensorName:      s.cfg.SensorName,
			Timestamp:       nowUnix(),
			ResponseCode:    sensortype.OK,
			SensorTelemetry: data,
		})
	}
}

// emitErrorReading decodes an empty (nil) line, ignoring any decode error,
// and reports whatever the decoder returned with DeviceReadError.
func (s *Supervisor) emitErrorReading(terminator []byte) {
	data, _ := s.cfg.Decoder.Decode(nil)
	s.cfg.Callback(telemetry.Reading{
		SensorName:      s.cfg.SensorName,
		Timestamp:       nowUnix(),
		ResponseCode:    sensortype.DeviceReadError,
		SensorTelemetry: data,
	})
}
