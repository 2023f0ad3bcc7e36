// Package config decodes and validates the JSON device-configuration file
// that drives the daemon: one top-level "devices" array, each entry
// describing a sensor to supervise. The shape and its conditional
// requirements are carried over field-for-field from the Python
// CONFIG_SCHEMA this system's configuration format was distilled from,
// expressed here as a Go struct plus github.com/go-playground/validator/v10
// tags instead of a JSON-schema document.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

var validate = validator.New()

// DefaultBaudRate is used when a device entry omits baud_rate.
const DefaultBaudRate = 19200

// Device is one entry of the "devices" array: a locally-attached sensor
// reachable over a serial or FTDI-USB transport and decoded in-process.
//
// Channels is required when SensorType is Temperature (one RTD channel
// count), FTDIID is required when DeviceType is FTDI, and SerialPort is
// required when DeviceType is Serial; validateDevice enforces all three
// after struct-tag validation passes, since validator's dive/oneof tags
// cannot express a field conditioned on a sibling field's value. NumSamples,
// SafeInterval, and Threshold are optional and only meaningful to the
// aggregating/event-emitting processors (Windsonic, CSAT3B, EFM100C,
// LD250); a sensor type that ignores them simply leaves them at zero.
type Device struct {
	DeviceType   sensortype.DeviceType `json:"device_type" koanf:"device_type" validate:"required,oneof=FTDI Serial"`
	Name         string                `json:"name" koanf:"name" validate:"required"`
	SensorType   sensortype.SensorType `json:"sensor_type" koanf:"sensor_type" validate:"required,oneof=CSAT3B EFM100C HX85A HX85BA LD250 Temperature Windsonic Aurora SPS30"`
	BaudRate     int                   `json:"baud_rate" koanf:"baud_rate"`
	Location     string                `json:"location" koanf:"location"`
	Channels     int                   `json:"channels,omitempty" koanf:"channels"`
	FTDIID       string                `json:"ftdi_id,omitempty" koanf:"ftdi_id"`
	SerialPort   string                `json:"serial_port,omitempty" koanf:"serial_port"`
	NumSamples   int                   `json:"num_samples,omitempty" koanf:"num_samples" validate:"omitempty,min=2"`
	SafeInterval float64               `json:"safe_interval,omitempty" koanf:"safe_interval"`
	Threshold    float64               `json:"threshold,omitempty" koanf:"threshold"`
}

// DeviceFile is the top-level document: { "devices": [...] }.
type DeviceFile struct {
	Devices []Device `json:"devices" koanf:"devices" validate:"required,min=1,dive"`
}

// ParseDeviceFile unmarshals and validates a device-configuration document,
// rejecting unknown top-level keys the way the source schema's
// additionalProperties: false does.
func ParseDeviceFile(b []byte) (DeviceFile, error) {
	var f DeviceFile
	if err := unmarshalStrict(b, &f); err != nil {
		return DeviceFile{}, fmt.Errorf("config: decode device file: %w", err)
	}
	for i := range f.Devices {
		if f.Devices[i].BaudRate == 0 {
			f.Devices[i].BaudRate = DefaultBaudRate
		}
	}
	if err := validate.Struct(f); err != nil {
		return DeviceFile{}, fmt.Errorf("config: validate device file: %w", err)
	}
	for _, d := range f.Devices {
		if err := validateDevice(d); err != nil {
			return DeviceFile{}, err
		}
	}
	return f, nil
}

func validateDevice(d Device) error {
	if d.SensorType == sensortype.Temperature && d.Channels <= 0 {
		return fmt.Errorf("config: device %q: channels is required and must be positive for sensor_type Temperature", d.Name)
	}
	switch d.DeviceType {
	case sensortype.FTDI:
		if d.FTDIID == "" {
			return fmt.Errorf("config: device %q: ftdi_id is required for device_type FTDI", d.Name)
		}
	case sensortype.Serial:
		if d.SerialPort == "" {
			return fmt.Errorf("config: device %q: serial_port is required for device_type Serial", d.Name)
		}
	}
	return nil
}
