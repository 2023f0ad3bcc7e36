// Package sensortype holds the closed set of identifiers shared across the
// decoder, processor, and data-client layers: the sensor-type tag, the
// command/telemetry response codes, and the small numeric constants that
// appear verbatim in the wire protocol.
package sensortype

// SensorType identifies the wire protocol a device speaks. It is the key
// used to look up a decoder in the registry and, for controller-protocol
// devices, the tag carried in configuration.
type SensorType string

// The closed set of supported sensor types.
const (
	Temperature      SensorType = "Temperature"
	HX85A            SensorType = "HX85A"
	HX85BA           SensorType = "HX85BA"
	CSAT3B           SensorType = "CSAT3B"
	Windsonic        SensorType = "Windsonic"
	EFM100C          SensorType = "EFM100C"
	LD250            SensorType = "LD250"
	Aurora           SensorType = "Aurora"
	SPS30            SensorType = "SPS30"
	SpectrumAnalyzer SensorType = "SpectrumAnalyzer"
)

// SNMP device kinds. These are not decoded from a line on the wire; the
// SNMP data client (dataclient.SNMPClient) walks a MIB tree instead, but
// they share the SensorType tag space so configuration can refer to them
// uniformly.
const (
	PDU             SensorType = "pdu"
	XUPS            SensorType = "xups"
	SchneiderPM5xxx SensorType = "schneiderPm5xxx"
)

// ResponseCode is returned with every SensorReading and every controller
// command reply.
type ResponseCode int

// The closed set of response codes.
const (
	OK                   ResponseCode = 0
	NotConfigured        ResponseCode = 1
	NotStarted           ResponseCode = 2
	AlreadyStarted       ResponseCode = 3
	InvalidConfiguration ResponseCode = 4
	DeviceReadError      ResponseCode = 10
)

// DeviceType distinguishes the physical transport a DeviceConfig describes.
type DeviceType string

const (
	FTDI   DeviceType = "FTDI"
	Serial DeviceType = "Serial"
)

const (
	// ControllerPort is the default TCP port the controller protocol
	// listens on.
	ControllerPort = 5000

	// DisconnectedValue is the sentinel string a multi-channel temperature
	// reader emits for a channel with nothing plugged in.
	DisconnectedValue = "9999.9990"

	// PascalsPerMillibar converts HX85BA pressure readings (millibar) to
	// the pascal units published on tel_pressure.
	PascalsPerMillibar = 100.0
)

// String implements fmt.Stringer.
func (s SensorType) String() string { return string(s) }

// String implements fmt.Stringer.
func (d DeviceType) String() string { return string(d) }

// String implements fmt.Stringer.
func (r ResponseCode) String() string {
	switch r {
	case OK:
		return "OK"
	case NotConfigured:
		return "NOT_CONFIGURED"
	case NotStarted:
		return "NOT_STARTED"
	case AlreadyStarted:
		return "ALREADY_STARTED"
	case InvalidConfiguration:
		return "INVALID_CONFIGURATION"
	case DeviceReadError:
		return "DEVICE_READ_ERROR"
	default:
		return "UNKNOWN"
	}
}
