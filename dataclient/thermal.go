/*ThermalClient reads a GEC Instruments thermal scanner's 95-channel frame
over a plain TCP socket and republishes it across the number of 16-channel
tel_temperature topics it takes to carry 95 channels (five full topics plus
one final, short topic), the same per-sensor name split the controller
protocol and processors elsewhere treat a single "channels" count for.
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
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// numThermocouples is the fixed channel count the scanner reports per frame.
const numThermocouples = 95

// thermalChannelsPerTopic is the width of each tel_temperature topic the
// scanner's channels are split across.
const thermalChannelsPerTopic = 16

// ThermalConfig parameterizes a ThermalClient.
type ThermalConfig struct {
	Host            string
	Port            int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	MaxReadTimeouts int
	Location        string
	SensorName      string
	Topics          topics.Topics
	Logger          *log.Logger
}

func (c *ThermalConfig) applyDefaults() {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 60 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 5 * time.Second
	}
	if c.MaxReadTimeouts <= 0 {
		c.MaxReadTimeouts = 5
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

type thermalTopicSpan struct {
	name        string
	numChannels int
}

// ThermalClient drives the base read-loop lifecycle against the scanner,
// splitting every frame's 95 values across its fixed set of topic spans.
type ThermalClient struct {
	cfg  ThermalConfig
	base *Client
	dev  *comm.Device

	spans []thermalTopicSpan
}

// NewThermalClient constructs a ThermalClient from cfg.
func NewThermalClient(cfg ThermalConfig) *ThermalClient {
	cfg.applyDefaults()
	c := &ThermalClient{cfg: cfg, spans: thermalSpans(cfg.SensorName)}
	c.base = New(Config{
		Name:            cfg.SensorName,
		MaxReadTimeouts: cfg.MaxReadTimeouts,
		ConnectTimeout:  cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		RateLimit:       MinRateLimit,
		Connect:         c.connect,
		Disconnect:      c.disconnect,
		ReadOnce:        c.readOnce,
		Logger:          cfg.Logger,
	})
	return c
}

// thermalSpans computes the fixed set of per-topic name/width pairs 95
// channels split into at 16 channels per topic: five topics of 16 plus one
// final topic of 15.
func thermalSpans(sensorName string) []thermalTopicSpan {
	numTopics := (numThermocouples + thermalChannelsPerTopic - 1) / thermalChannelsPerTopic
	spans := make([]thermalTopicSpan, numTopics)
	for tn := 0; tn < numTopics; tn++ {
		width := thermalChannelsPerTopic
		if tn == numTopics-1 {
			width = numThermocouples - thermalChannelsPerTopic*(numTopics-1)
		}
		spans[tn] = thermalTopicSpan{
			name:        fmt.Sprintf("%s %d/%d", sensorName, tn+1, numTopics),
			numChannels: width,
		}
	}
	return spans
}

// Start begins the connect/read/reconnect lifecycle in the background.
func (c *ThermalClient) Start() { c.base.Start() }

// Stop requests shutdown and waits up to grace for it to complete.
func (c *ThermalClient) Stop(grace time.Duration) { c.base.Stop(grace) }

func (c *ThermalClient) connect(ctx context.Context) error {
	c.dev = comm.NewDevice(comm.Setup{Host: c.cfg.Host, Port: c.cfg.Port}, c.cfg.ReadTimeout)
	return c.dev.Open(c.cfg.ConnectTimeout)
}

func (c *ThermalClient) disconnect() {
	if c.dev != nil {
		c.dev.Close()
	}
}

func (c *ThermalClient) readOnce(ctx context.Context) error {
	line, err := c.dev.ReadLine([]byte("\n"), c.cfg.ReadTimeout)
	if err != nil {
		return err
	}
	data := string(line)
	idx := strings.Index(data, ":")
	if idx < 0 {
		c.cfg.Logger.Printf("dataclient[thermal %s]: malformed frame, no timestamp separator: %q", c.cfg.SensorName, data)
		return nil
	}

	timestamp, err := strconv.ParseFloat(strings.TrimSpace(data[:idx]), 64)
	if err != nil {
		c.cfg.Logger.Printf("dataclient[thermal %s]: malformed timestamp %q: %v", c.cfg.SensorName, data[:idx], err)
		return nil
	}

	fields := strings.Split(data[idx+1:], ",")
	if len(fields) != numThermocouples {
		c.cfg.Logger.Printf("dataclient[thermal %s]: invalid data - expected %d values, received %d: %q",
			c.cfg.SensorName, numThermocouples, len(fields), data)
		return nil
	}

	temperatures := make([]float64, numThermocouples)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			c.cfg.Logger.Printf("dataclient[thermal %s]: malformed value %q at index %d: %v", c.cfg.SensorName, f, i, err)
			return nil
		}
		temperatures[i] = v
	}

	offset := 0
	for _, span := range c.spans {
		err := c.cfg.Topics.TelTemperature(topics.Temperature{
			SensorName:  span.name,
			Timestamp:   timestamp,
			Temperature: temperatures[offset : offset+span.numChannels],
			NumChannels: span.numChannels,
			Location:    c.cfg.Location,
		})
		if err != nil {
			c.cfg.Logger.Printf("dataclient[thermal %s]: publishing %s: %v", c.cfg.SensorName, span.name, err)
		}
		offset += span.numChannels
	}
	return nil
}
