package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

// Defaults for the data-client configuration extensions, carried over from
// the controller/SNMP/spectrum-analyzer client schemas.
const (
	DefaultControllerPort    = 5000
	DefaultMaxReadTimeouts   = 5
	DefaultConnectTimeoutSec = 60
	DefaultRateLimitHz       = 0.5
	DefaultSNMPPort          = 161
	DefaultSNMPCommunity     = "public"
)

func unmarshalStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ControllerClient configures a data client that talks to a remote skywatch
// controller instance over the line-JSON TCP protocol (see the controller
// package), rather than decoding a sensor directly.
type ControllerClient struct {
	Host            string   `json:"host" koanf:"host" validate:"required"`
	Port            int      `json:"port" koanf:"port"`
	MaxReadTimeouts int      `json:"max_read_timeouts" koanf:"max_read_timeouts"`
	ConnectTimeout  float64  `json:"connect_timeout" koanf:"connect_timeout"`
	RateLimit       float64  `json:"rate_limit" koanf:"rate_limit"`
	NumSamples      int      `json:"num_samples" koanf:"num_samples" validate:"required,min=2"`
	SafeInterval    float64  `json:"safe_interval" koanf:"safe_interval"`
	Threshold       float64  `json:"threshold" koanf:"threshold"`
	Devices         []Device `json:"devices" koanf:"devices" validate:"required,min=1,dive"`
}

// applyDefaults fills in the zero-valued optional fields with the schema's
// documented defaults; called once after unmarshaling.
func (c *ControllerClient) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultControllerPort
	}
	if c.MaxReadTimeouts == 0 {
		c.MaxReadTimeouts = DefaultMaxReadTimeouts
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeoutSec
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimitHz
	}
}

// ParseControllerClient unmarshals and validates a controller-data-client
// configuration entry, applying its documented defaults.
func ParseControllerClient(b []byte) (ControllerClient, error) {
	var c ControllerClient
	if err := unmarshalStrict(b, &c); err != nil {
		return ControllerClient{}, err
	}
	c.applyDefaults()
	if err := validate.Struct(c); err != nil {
		return ControllerClient{}, err
	}
	return c, nil
}

// TCPSensor configures a sensor reachable directly over TCP (no serial/FTDI
// transport, no intermediary controller), decoded in-process like a local
// Device but dialed rather than opened as a character device.
type TCPSensor struct {
	Host            string                `json:"host" koanf:"host" validate:"required"`
	Port            int                   `json:"port" koanf:"port" validate:"required"`
	ConnectTimeout  float64               `json:"connect_timeout" koanf:"connect_timeout"`
	ReadTimeout     float64               `json:"read_timeout" koanf:"read_timeout"`
	MaxReadTimeouts int                   `json:"max_read_timeouts" koanf:"max_read_timeouts"`
	Name            string                `json:"name" koanf:"name" validate:"required"`
	SensorType      sensortype.SensorType `json:"sensor_type" koanf:"sensor_type" validate:"required"`
	Channels        int                   `json:"channels,omitempty" koanf:"channels"`
	BaudRate        int                   `json:"baud_rate" koanf:"baud_rate"`
	NumSamples      int                   `json:"num_samples,omitempty" koanf:"num_samples"`
	PollInterval    float64               `json:"poll_interval" koanf:"poll_interval"`
	Location        string                `json:"location" koanf:"location"`
}

// ParseTCPSensor unmarshals and validates a TCP-direct sensor entry.
func ParseTCPSensor(b []byte) (TCPSensor, error) {
	var c TCPSensor
	if err := unmarshalStrict(b, &c); err != nil {
		return TCPSensor{}, err
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if err := validate.Struct(c); err != nil {
		return TCPSensor{}, err
	}
	return c, nil
}

// SNMPDevice configures a polled SNMP-managed device: a PDU, a UPS, or a
// Schneider PM5xxx power meter, mapped through the snmpmib package's OID
// trees rather than decoded from a line-oriented wire format.
type SNMPDevice struct {
	Host            string                `json:"host" koanf:"host" validate:"required"`
	Port            int                   `json:"port" koanf:"port"`
	MaxReadTimeouts int                   `json:"max_read_timeouts" koanf:"max_read_timeouts"`
	DeviceName      string                `json:"device_name" koanf:"device_name" validate:"required"`
	DeviceType      sensortype.SensorType `json:"device_type" koanf:"device_type" validate:"required,oneof=pdu xups schneiderPm5xxx"`
	SNMPCommunity   string                `json:"snmp_community" koanf:"snmp_community"`
	PollInterval    float64               `json:"poll_interval" koanf:"poll_interval"`
}

// ParseSNMPDevice unmarshals and validates an SNMP device entry, applying
// its documented defaults.
func ParseSNMPDevice(b []byte) (SNMPDevice, error) {
	var c SNMPDevice
	if err := unmarshalStrict(b, &c); err != nil {
		return SNMPDevice{}, err
	}
	if c.Port == 0 {
		c.Port = DefaultSNMPPort
	}
	if c.SNMPCommunity == "" {
		c.SNMPCommunity = DefaultSNMPCommunity
	}
	if err := validate.Struct(c); err != nil {
		return SNMPDevice{}, err
	}
	return c, nil
}

// FrequencyUnit is one of the units the spectrum analyzer's sweep-range
// fields may be expressed in.
type FrequencyUnit string

const (
	GHz FrequencyUnit = "GHz"
	MHz FrequencyUnit = "MHz"
	KHz FrequencyUnit = "kHz"
	Hz  FrequencyUnit = "Hz"
)

// SpectrumAnalyzer configures a Siglent-class spectrum analyzer client
// polled over a SCPI-like TCP socket.
type SpectrumAnalyzer struct {
	Host            string        `json:"host" koanf:"host" validate:"required"`
	Port            int           `json:"port" koanf:"port" validate:"required"`
	ConnectTimeout  float64       `json:"connect_timeout" koanf:"connect_timeout"`
	ReadTimeout     float64       `json:"read_timeout" koanf:"read_timeout"`
	MaxReadTimeouts int           `json:"max_read_timeouts" koanf:"max_read_timeouts"`
	Location        string        `json:"location" koanf:"location"`
	SensorName      string        `json:"sensor_name" koanf:"sensor_name" validate:"required"`
	PollInterval    float64       `json:"poll_interval" koanf:"poll_interval"`
	FreqStartValue  float64       `json:"freq_start_value" koanf:"freq_start_value"`
	FreqStartUnit   FrequencyUnit `json:"freq_start_unit" koanf:"freq_start_unit" validate:"omitempty,oneof=GHz MHz kHz Hz"`
	FreqStopValue   float64       `json:"freq_stop_value" koanf:"freq_stop_value"`
	FreqStopUnit    FrequencyUnit `json:"freq_stop_unit" koanf:"freq_stop_unit" validate:"omitempty,oneof=GHz MHz kHz Hz"`
}

// ParseSpectrumAnalyzer unmarshals and validates a spectrum-analyzer client
// configuration entry.
func ParseSpectrumAnalyzer(b []byte) (SpectrumAnalyzer, error) {
	var c SpectrumAnalyzer
	if err := unmarshalStrict(b, &c); err != nil {
		return SpectrumAnalyzer{}, err
	}
	if err := validate.Struct(c); err != nil {
		return SpectrumAnalyzer{}, err
	}
	return c, nil
}

// ThermalScanner configures a GEC Instruments thermal scanner client polled
// over a plain TCP socket, the scanner's 95 channels split across however
// many 16-channel tel_temperature topics that takes.
type ThermalScanner struct {
	Host            string  `json:"host" koanf:"host" validate:"required"`
	Port            int     `json:"port" koanf:"port" validate:"required"`
	ConnectTimeout  float64 `json:"connect_timeout" koanf:"connect_timeout"`
	ReadTimeout     float64 `json:"read_timeout" koanf:"read_timeout"`
	MaxReadTimeouts int     `json:"max_read_timeouts" koanf:"max_read_timeouts"`
	Location        string  `json:"location" koanf:"location"`
	SensorName      string  `json:"sensor_name" koanf:"sensor_name" validate:"required"`
}

// ParseThermalScanner unmarshals and validates a thermal-scanner client
// configuration entry.
func ParseThermalScanner(b []byte) (ThermalScanner, error) {
	var c ThermalScanner
	if err := unmarshalStrict(b, &c); err != nil {
		return ThermalScanner{}, err
	}
	if err := validate.Struct(c); err != nil {
		return ThermalScanner{}, err
	}
	return c, nil
}

// rawArray splits a bare JSON array document into its per-element raw
// messages, so each element can be run through the same single-entry
// Parse* function the corresponding wire schema already defines.
func rawArray(b []byte) ([]json.RawMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("config: decode array: %w", err)
	}
	return raws, nil
}

// ParseTCPSensorsFile unmarshals a bare JSON array of TCP-direct sensor
// entries.
func ParseTCPSensorsFile(b []byte) ([]TCPSensor, error) {
	raws, err := rawArray(b)
	if err != nil {
		return nil, err
	}
	out := make([]TCPSensor, 0, len(raws))
	for _, raw := range raws {
		c, err := ParseTCPSensor(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseSNMPDevicesFile unmarshals a bare JSON array of SNMP device entries.
func ParseSNMPDevicesFile(b []byte) ([]SNMPDevice, error) {
	raws, err := rawArray(b)
	if err != nil {
		return nil, err
	}
	out := make([]SNMPDevice, 0, len(raws))
	for _, raw := range raws {
		c, err := ParseSNMPDevice(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseSpectrumAnalyzersFile unmarshals a bare JSON array of spectrum
// analyzer entries.
func ParseSpectrumAnalyzersFile(b []byte) ([]SpectrumAnalyzer, error) {
	raws, err := rawArray(b)
	if err != nil {
		return nil, err
	}
	out := make([]SpectrumAnalyzer, 0, len(raws))
	for _, raw := range raws {
		c, err := ParseSpectrumAnalyzer(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseThermalScannersFile unmarshals a bare JSON array of thermal scanner
// entries.
func ParseThermalScannersFile(b []byte) ([]ThermalScanner, error) {
	raws, err := rawArray(b)
	if err != nil {
		return nil, err
	}
	out := make([]ThermalScanner, 0, len(raws))
	for _, raw := range raws {
		c, err := ParseThermalScanner(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseControllerClientsFile unmarshals a bare JSON array of controller
// client entries.
func ParseControllerClientsFile(b []byte) ([]ControllerClient, error) {
	raws, err := rawArray(b)
	if err != nil {
		return nil, err
	}
	out := make([]ControllerClient, 0, len(raws))
	for _, raw := range raws {
		c, err := ParseControllerClient(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
