/*TCPSensorClient owns a sensor reachable directly over TCP rather than
serial/FTDI or the controller protocol: same decode.Decoder/process.Processor
pairing a locally-owned device uses, but driven through the base read-loop
lifecycle (Client) at a configured poll_interval instead of supervisor's
continuous push loop, since a bare TCP socket to a remote sensor is paced
the same way the controller and SNMP clients are.
*/
package dataclient

import (
	"context"
	"log"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/decode"
	"github.jpl.nasa.gov/ems/skywatch/process"
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// TCPSensorClient drives the base read-loop lifecycle against a sensor
// dialed directly over TCP, decoding each line and handing it to the one
// Processor configured for the device.
type TCPSensorClient struct {
	cfg  config.TCPSensor
	base *Client

	dev     *comm.Device
	decoder decode.Decoder
	proc    process.Processor
}

// NewTCPSensorClient builds the decoder and processor for cfg.SensorType and
// returns a ready-to-Start TCPSensorClient.
func NewTCPSensorClient(cfg config.TCPSensor, tp topics.Topics, logger *log.Logger) (*TCPSensorClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	dec, err := decode.New(cfg.SensorType, decode.Options{NumChannels: cfg.Channels})
	if err != nil {
		return nil, err
	}
	proc, err := newProcessorFor(cfg.SensorType, cfg.Name, cfg.Location, cfg.Channels, processorParams{
		NumSamples: cfg.NumSamples,
	}, tp)
	if err != nil {
		return nil, err
	}

	c := &TCPSensorClient{cfg: cfg, decoder: dec, proc: proc}
	pollInterval := time.Duration(cfg.PollInterval * float64(time.Second))
	c.base = New(Config{
		Name:            cfg.Name,
		MaxReadTimeouts: cfg.MaxReadTimeouts,
		ConnectTimeout:  time.Duration(cfg.ConnectTimeout * float64(time.Second)),
		ReadTimeout:     time.Duration(cfg.ReadTimeout * float64(time.Second)),
		RateLimit:       pollInterval,
		Connect:         c.connect,
		Disconnect:      c.disconnect,
		ReadOnce:        c.readOnce,
		Logger:          logger,
	})
	return c, nil
}

// Start begins the connect/read/reconnect lifecycle in the background.
func (c *TCPSensorClient) Start() { c.base.Start() }

// Stop requests shutdown and waits up to grace for it to complete.
func (c *TCPSensorClient) Stop(grace time.Duration) { c.base.Stop(grace) }

func (c *TCPSensorClient) connect(ctx context.Context) error {
	c.dev = comm.NewDevice(comm.Setup{Host: c.cfg.Host, Port: c.cfg.Port}, c.base.cfg.ReadTimeout)
	return c.dev.Open(c.base.cfg.ConnectTimeout)
}

func (c *TCPSensorClient) disconnect() {
	if c.dev != nil {
		c.dev.Close()
	}
}

func (c *TCPSensorClient) readOnce(ctx context.Context) error {
	line, err := c.dev.ReadLine(c.decoder.Terminator(), c.base.cfg.ReadTimeout)
	if err != nil {
		c.proc.Process(telemetry.Reading{
			SensorName:   c.cfg.Name,
			Timestamp:    float64(time.Now().UnixNano()) / 1e9,
			ResponseCode: sensortype.DeviceReadError,
		})
		return err
	}

	data, decErr := c.decoder.Decode(line)
	if decErr != nil {
		c.proc.Process(telemetry.Reading{
			SensorName:   c.cfg.Name,
			Timestamp:    float64(time.Now().UnixNano()) / 1e9,
			ResponseCode: sensortype.DeviceReadError,
		})
		return nil
	}

	c.proc.Process(telemetry.Reading{
		SensorName:      c.cfg.Name,
		Timestamp:       float64(time.Now().UnixNano()) / 1e9,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: data,
	})
	return nil
}
