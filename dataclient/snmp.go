/*SNMPClient polls a PDU, UPS, or power-meter SNMP agent through the base
read-loop lifecycle (Client), the same connect/read/reconnect policy every
other data client variant runs, specialized here by walking a MIB subtree
(see the snmpmib package) in place of decoding a line of wire text.

gosnmp (github.com/gosnmp/gosnmp) is the SNMP library carried over from the
rest of the example pack's network-equipment tooling; its Walk method
issues the GETNEXT-based walk the original client's pysnmp nextCmd call
performs, regardless of SNMP version.
*/
package dataclient

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/snmpmib"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

// SNMPConfig parameterizes an SNMPClient.
type SNMPConfig struct {
	Host            string
	Port            int
	Community       string
	DeviceName      string
	DeviceType      sensortype.SensorType
	MaxReadTimeouts int
	PollInterval    time.Duration
	Topics          topics.Topics
	Logger          *log.Logger
}

func (c *SNMPConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 161
	}
	if c.Community == "" {
		c.Community = "public"
	}
	if c.MaxReadTimeouts <= 0 {
		c.MaxReadTimeouts = 5
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// SNMPClient drives a Client lifecycle that connects to an SNMP agent,
// caches its system description once, and on every poll walks the device's
// own MIB subtree and publishes the assembled record.
type SNMPClient struct {
	cfg    SNMPConfig
	base   *Client
	worker *worker

	snmp              *gosnmp.GoSNMP
	systemDescription string
	deviceRootOID     string
	fields            map[string]snmpmib.Entry
}

// NewSNMPClient constructs an SNMPClient for cfg.DeviceType, failing if the
// device type has no known MIB subtree.
func NewSNMPClient(cfg SNMPConfig) (*SNMPClient, error) {
	cfg.applyDefaults()
	root, ok := snmpmib.DeviceRootOID(string(cfg.DeviceType))
	if !ok {
		return nil, fmt.Errorf("dataclient: unknown SNMP device type %q", cfg.DeviceType)
	}
	fields, _ := snmpmib.FieldsFor(string(cfg.DeviceType))

	c := &SNMPClient{
		cfg:               cfg,
		worker:            newWorker(),
		deviceRootOID:     root,
		fields:            fields,
		systemDescription: "No system description set.",
	}
	c.base = New(Config{
		Name:            cfg.DeviceName,
		MaxReadTimeouts: cfg.MaxReadTimeouts,
		RateLimit:       cfg.PollInterval,
		Connect:         c.connect,
		Disconnect:      c.disconnect,
		ReadOnce:        c.readOnce,
		Logger:          cfg.Logger,
	})
	return c, nil
}

// Start begins the connect/poll/reconnect lifecycle in the background.
func (c *SNMPClient) Start() { c.base.Start() }

// Stop requests shutdown and waits up to grace for it to complete, then
// retires the background worker goroutine.
func (c *SNMPClient) Stop(grace time.Duration) {
	c.base.Stop(grace)
	c.worker.close()
}

func (c *SNMPClient) connect(ctx context.Context) error {
	c.snmp = &gosnmp.GoSNMP{
		Target:    c.cfg.Host,
		Port:      uint16(c.cfg.Port),
		Community: c.cfg.Community,
		Version:   gosnmp.Version2c,
		Timeout:   5 * time.Second,
		Retries:   1,
	}
	if err := c.snmp.Connect(); err != nil {
		return err
	}
	return c.worker.do(ctx, c.fetchSystemDescription)
}

// fetchSystemDescription is setup_reading: a one-time walk of the "system"
// subtree to cache sysDescr, since it is not expected to change for the
// life of the connection.
func (c *SNMPClient) fetchSystemDescription() error {
	result, err := c.walk(snmpmib.SystemOID)
	if err != nil {
		return err
	}
	if v, ok := result[snmpmib.SysDescrOID+".0"]; ok {
		c.systemDescription = v
	} else {
		c.cfg.Logger.Printf("snmp[%s]: could not retrieve sysDescr, continuing", c.cfg.DeviceName)
	}
	return nil
}

func (c *SNMPClient) disconnect() {
	if c.snmp != nil && c.snmp.Conn != nil {
		c.snmp.Conn.Close()
	}
}

func (c *SNMPClient) readOnce(ctx context.Context) error {
	return c.worker.do(ctx, c.pollOnce)
}

func (c *SNMPClient) pollOnce() error {
	result, err := c.walk(c.deviceRootOID)
	if err != nil {
		return err
	}
	values := snmpmib.Collect(result, c.fields)
	return c.publish(values)
}

func (c *SNMPClient) walk(rootOID string) (snmpmib.Values, error) {
	result := make(snmpmib.Values)
	err := c.snmp.Walk(rootOID, func(pdu gosnmp.SnmpPDU) error {
		result[strings.TrimPrefix(pdu.Name, ".")] = pduString(pdu)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func pduString(pdu gosnmp.SnmpPDU) string {
	if pdu.Type == gosnmp.OctetString {
		if b, ok := pdu.Value.([]byte); ok {
			return string(b)
		}
	}
	return fmt.Sprintf("%v", pdu.Value)
}

func (c *SNMPClient) publish(v map[string]any) error {
	now := float64(time.Now().UnixNano()) / 1e9
	switch c.cfg.DeviceType {
	case sensortype.PDU:
		return c.cfg.Topics.TelPDU(topics.PDU{
			DeviceName:        c.cfg.DeviceName,
			Timestamp:         now,
			SystemDescription: c.systemDescription,
			InputVoltage:      v["InputVoltage"].(float64),
			InputFrequency:    v["InputFrequency"].(float64),
			OutletCurrent:     v["OutletCurrent"].([]float64),
			OutletStatus:      v["OutletStatus"].([]int),
		})
	case sensortype.XUPS:
		return c.cfg.Topics.TelXUPS(topics.XUPS{
			DeviceName:           c.cfg.DeviceName,
			Timestamp:            now,
			SystemDescription:    c.systemDescription,
			InputVoltage:         v["InputVoltage"].(float64),
			InputFrequency:       v["InputFrequency"].(float64),
			OutputVoltage:        v["OutputVoltage"].(float64),
			OutputLoad:           v["OutputLoad"].(float64),
			BatteryCapacity:      v["BatteryCapacity"].(float64),
			BatteryTemperature:   v["BatteryTemperature"].(float64),
			BatteryTimeRemaining: v["BatteryTimeRemaining"].(float64),
		})
	case sensortype.SchneiderPM5xxx:
		return c.cfg.Topics.TelSchneiderPM5xxx(topics.SchneiderPM5xxx{
			DeviceName:        c.cfg.DeviceName,
			Timestamp:         now,
			SystemDescription: c.systemDescription,
			PhaseVoltage:      v["PhaseVoltage"].([]float64),
			PhaseCurrent:      v["PhaseCurrent"].([]float64),
			Frequency:         v["Frequency"].(float64),
			ActivePower:       v["ActivePower"].(float64),
			ReactivePower:     v["ReactivePower"].(float64),
			ApparentPower:     v["ApparentPower"].(float64),
		})
	default:
		return fmt.Errorf("dataclient: unknown SNMP device type %q", c.cfg.DeviceType)
	}
}
