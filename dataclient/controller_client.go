package dataclient

import (
	"context"
	"log"
	"sync"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/controller"
	"github.jpl.nasa.gov/ems/skywatch/process"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// ControllerClientConfig parameterizes a ControllerDataClient.
type ControllerClientConfig struct {
	Addr            string
	Devices         []config.Device
	DevicesWire     []byte // the exact JSON array sent as the configure command's "devices" payload
	MaxReadTimeouts int
	ConnectTimeout  time.Duration
	NumSamples      int
	SafeInterval    time.Duration
	Threshold       float64
	Topics          topics.Topics
	Logger          *log.Logger
}

func (c *ControllerClientConfig) applyDefaults() {
	if c.MaxReadTimeouts <= 0 {
		c.MaxReadTimeouts = 5
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 60 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// ControllerDataClient drives a controller.Client against a remote
// aggregator: it dials, sends configure, and dispatches every telemetry
// frame to a per-sensor-name Processor constructed lazily on that name's
// first frame, per the controller data client's own lifecycle rather than
// the generic poll-based Client's (the controller connection delivers
// telemetry by push, not by a rate-limited read loop).
type ControllerDataClient struct {
	cfg ControllerClientConfig

	mu         sync.Mutex
	processors map[string]processorEntry
	running    bool
	cancel     context.CancelFunc
	done       chan struct{}
}

type processorEntry struct {
	proc     process.Processor
	location string
	channels int
}

// NewControllerDataClient constructs a ControllerDataClient from cfg,
// indexing cfg.Devices by name so incoming telemetry frames can be
// resolved to a sensor type without the wire frame itself carrying one.
func NewControllerDataClient(cfg ControllerClientConfig) *ControllerDataClient {
	cfg.applyDefaults()
	return &ControllerDataClient{cfg: cfg, processors: make(map[string]processorEntry)}
}

// Start begins the connect/configure/stream/reconnect lifecycle in the
// background.
func (c *ControllerDataClient) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.running = true
	c.mu.Unlock()
	go c.run(ctx)
}

// Stop requests shutdown and waits up to grace for the lifecycle to exit.
func (c *ControllerDataClient) Stop(grace time.Duration) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-time.After(grace):
		c.cfg.Logger.Printf("dataclient[controller %s]: stop grace period exceeded", c.cfg.Addr)
	}
}

func (c *ControllerDataClient) run(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		close(c.done)
	}()

	for ctx.Err() == nil {
		if err := c.connectOnce(ctx); err != nil {
			c.cfg.Logger.Printf("dataclient[controller %s]: %v", c.cfg.Addr, err)
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case <-time.After(c.cfg.ConnectTimeout):
		case <-ctx.Done():
			return
		}
	}
}

// connectOnce dials, configures, and blocks until the connection drops or
// ctx is cancelled.
func (c *ControllerDataClient) connectOnce(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	client, err := controller.Dial(dialCtx, c.cfg.Addr, c.onTelemetry)
	if err != nil {
		return err
	}
	defer client.Close()

	code, err := client.Configure(dialCtx, c.cfg.DevicesWire)
	if err != nil {
		return err
	}
	if code != sensortype.OK {
		return errConfigureRejected{code: code}
	}

	<-ctx.Done()
	return nil
}

type errConfigureRejected struct{ code sensortype.ResponseCode }

func (e errConfigureRejected) Error() string {
	return "controller: configure rejected with " + e.code.String()
}

// onTelemetry is the controller.Client handler: it resolves or lazily
// builds the processor for frame.Name and forwards the reading.
// DEVICE_READ_ERROR frames still reach the processor (so status topics
// observe the fault) but are also logged distinctly, since a faulty
// physical sensor behind the remote aggregator is an operational concern
// this client cannot repair by reconnecting.
func (c *ControllerDataClient) onTelemetry(frame controller.TelemetryFrame) {
	switch frame.ResponseCode {
	case sensortype.OK, sensortype.NotConfigured, sensortype.NotStarted,
		sensortype.AlreadyStarted, sensortype.InvalidConfiguration, sensortype.DeviceReadError:
	default:
		c.cfg.Logger.Printf("dataclient[controller %s]: unknown response code %d for %q, ignoring",
			c.cfg.Addr, frame.ResponseCode, frame.Name)
		return
	}
	if frame.ResponseCode == sensortype.DeviceReadError {
		c.cfg.Logger.Printf("dataclient[controller %s]: device read error reported for %q", c.cfg.Addr, frame.Name)
	}

	entry, err := c.processorFor(frame.Name)
	if err != nil {
		c.cfg.Logger.Printf("dataclient[controller %s]: %v", c.cfg.Addr, err)
		return
	}
	entry.proc.Process(telemetry.Reading{
		SensorName:      frame.Name,
		Timestamp:       frame.Timestamp,
		ResponseCode:    frame.ResponseCode,
		SensorTelemetry: telemetry.Data(frame.SensorTelemetry),
	})
}

func (c *ControllerDataClient) processorFor(name string) (processorEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.processors[name]; ok {
		return e, nil
	}

	var d config.Device
	found := false
	for _, cd := range c.cfg.Devices {
		if cd.Name == name {
			d, found = cd, true
			break
		}
	}
	if !found {
		return processorEntry{}, errUnknownSensor{name: name}
	}

	proc, err := newProcessorFor(d.SensorType, d.Name, d.Location, d.Channels, processorParams{
		NumSamples:   c.cfg.NumSamples,
		SafeInterval: c.cfg.SafeInterval,
		Threshold:    c.cfg.Threshold,
	}, c.cfg.Topics)
	if err != nil {
		return processorEntry{}, err
	}
	entry := processorEntry{proc: proc, location: d.Location, channels: d.Channels}
	c.processors[name] = entry
	return entry, nil
}

type errUnknownSensor struct{ name string }

func (e errUnknownSensor) Error() string {
	return "dataclient: telemetry frame for unconfigured sensor " + e.name
}
