/*SpectrumClient talks to a Siglent-style SCPI spectrum analyzer over a
plain TCP socket, through the same comm.Device transport the serial/FTDI
sensors use (the analyzer has no decoder-table wire format to register;
its replies are ad hoc SCPI query responses, not sensor line frames).
*/
package dataclient

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/comm"
	"github.jpl.nasa.gov/ems/skywatch/config"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// expectedSpectrumPoints is the number of comma-separated values the
// analyzer returns for a trace-data query, fixed by its display resolution.
const expectedSpectrumPoints = 751

const spectrumTraceQuery = ":trace:data? 1"

// SpectrumConfig parameterizes a SpectrumClient.
type SpectrumConfig struct {
	Host            string
	Port            int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	MaxReadTimeouts int
	Location        string
	SensorName      string
	PollInterval    time.Duration
	FreqStartValue  float64
	FreqStartUnit   config.FrequencyUnit
	FreqStopValue   float64
	FreqStopUnit    config.FrequencyUnit
	Topics          topics.Topics
	Logger          *log.Logger
}

func (c *SpectrumConfig) applyDefaults() {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 60 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 5 * time.Second
	}
	if c.MaxReadTimeouts <= 0 {
		c.MaxReadTimeouts = 5
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.FreqStartUnit == "" {
		c.FreqStartUnit = config.GHz
	}
	if c.FreqStopUnit == "" {
		c.FreqStopUnit = config.GHz
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// SpectrumClient drives the base read-loop lifecycle against a spectrum
// analyzer: on connect it sets the sweep range and reads it back, then
// polls trace data at PollInterval.
type SpectrumClient struct {
	cfg  SpectrumConfig
	base *Client

	dev  *comm.Device
	seen bool // have_seen_data: a short first reply is expected and discarded

	startFrequency float64
	stopFrequency  float64
}

// NewSpectrumClient constructs a SpectrumClient from cfg.
func NewSpectrumClient(cfg SpectrumConfig) *SpectrumClient {
	cfg.applyDefaults()
	c := &SpectrumClient{cfg: cfg}
	c.base = New(Config{
		Name:            cfg.SensorName,
		MaxReadTimeouts: cfg.MaxReadTimeouts,
		ConnectTimeout:  cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		RateLimit:       cfg.PollInterval,
		Connect:         c.connect,
		Disconnect:      c.disconnect,
		ReadOnce:        c.readOnce,
		Logger:          cfg.Logger,
	})
	return c
}

// Start begins the connect/poll/reconnect lifecycle in the background.
func (c *SpectrumClient) Start() { c.base.Start() }

// Stop requests shutdown and waits up to grace for it to complete.
func (c *SpectrumClient) Stop(grace time.Duration) { c.base.Stop(grace) }

func (c *SpectrumClient) connect(ctx context.Context) error {
	c.seen = false
	c.dev = comm.NewDevice(comm.Setup{Host: c.cfg.Host, Port: c.cfg.Port}, c.cfg.ReadTimeout)
	if err := c.dev.Open(c.cfg.ConnectTimeout); err != nil {
		return err
	}
	return c.setupReading()
}

func (c *SpectrumClient) disconnect() {
	if c.dev != nil {
		c.dev.Close()
	}
}

// setupReading sends the configured start/stop frequency and queries them
// back, the same handshake the original client performs once per
// connection before entering the poll loop.
func (c *SpectrumClient) setupReading() error {
	if err := c.write(setFreqCmd("start", c.cfg.FreqStartValue, c.cfg.FreqStartUnit)); err != nil {
		return err
	}
	if err := c.write(setFreqCmd("stop", c.cfg.FreqStopValue, c.cfg.FreqStopUnit)); err != nil {
		return err
	}
	startReply, err := c.query(":frequency:start?")
	if err != nil {
		return err
	}
	c.startFrequency, err = strconv.ParseFloat(startReply, 64)
	if err != nil {
		return fmt.Errorf("dataclient[spectrum %s]: parsing start frequency reply %q: %w", c.cfg.SensorName, startReply, err)
	}
	stopReply, err := c.query(":frequency:stop?")
	if err != nil {
		return err
	}
	c.stopFrequency, err = strconv.ParseFloat(stopReply, 64)
	if err != nil {
		return fmt.Errorf("dataclient[spectrum %s]: parsing stop frequency reply %q: %w", c.cfg.SensorName, stopReply, err)
	}
	return nil
}

func setFreqCmd(which string, value float64, unit config.FrequencyUnit) string {
	return fmt.Sprintf(":frequency:%s %.1f %s", which, value, unit)
}

func (c *SpectrumClient) write(cmd string) error {
	return c.dev.Write([]byte(cmd + "\r\n"))
}

func (c *SpectrumClient) query(cmd string) (string, error) {
	if err := c.write(cmd); err != nil {
		return "", err
	}
	line, err := c.dev.ReadLine([]byte("\n"), c.cfg.ReadTimeout)
	if err != nil {
		c.seen = false
		return "", err
	}
	return strings.TrimSpace(string(line)), nil
}

func (c *SpectrumClient) readOnce(ctx context.Context) error {
	raw, err := c.query(spectrumTraceQuery)
	if err != nil {
		return err
	}
	fields := strings.Split(raw, ",")
	if len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	data := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return fmt.Errorf("dataclient[spectrum %s]: parsing trace point %q: %w", c.cfg.SensorName, f, err)
		}
		data = append(data, v)
	}

	if len(data) != expectedSpectrumPoints {
		if !c.seen {
			c.cfg.Logger.Printf("dataclient[spectrum %s]: got %d points on first read, discarding", c.cfg.SensorName, len(data))
			c.seen = true
			return nil
		}
		return fmt.Errorf("dataclient[spectrum %s]: got %d data points, want %d", c.cfg.SensorName, len(data), expectedSpectrumPoints)
	}
	c.seen = true

	return c.cfg.Topics.TelSpectrumAnalyzer(topics.SpectrumAnalyzer{
		SensorName:     c.cfg.SensorName,
		Location:       c.cfg.Location,
		StartFrequency: c.startFrequency,
		StopFrequency:  c.stopFrequency,
		Spectrum:       data,
		Timestamp:      float64(time.Now().UnixNano()) / 1e9,
	})
}
