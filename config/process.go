package config

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

// Process holds the daemon's own process-level settings: where it listens
// for controller connections, how chatty its logging is, and where the
// device-configuration file lives. This is loaded the way
// cmd/multiserver loads multiserver.Config: koanf seeded with struct
// defaults, then overlaid with an optional YAML file on disk.
type Process struct {
	// BindAddr is the address the controller TCP listener binds, e.g.
	// ":5000". Empty disables the controller-protocol listener entirely;
	// locally-owned devices are still supervised in-process either way.
	BindAddr string `koanf:"bindaddr"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `koanf:"loglevel"`

	// DeviceConfigPath is the path to the devices.json file parsed by
	// ParseDeviceFile. Empty means this process owns no local devices.
	DeviceConfigPath string `koanf:"deviceconfigpath"`

	// TCPSensorConfigPath, if set, names a bare JSON array of TCPSensor
	// entries parsed by ParseTCPSensorsFile.
	TCPSensorConfigPath string `koanf:"tcpsensorconfigpath"`

	// SNMPDeviceConfigPath, if set, names a bare JSON array of SNMPDevice
	// entries parsed by ParseSNMPDevicesFile.
	SNMPDeviceConfigPath string `koanf:"snmpdeviceconfigpath"`

	// SpectrumAnalyzerConfigPath, if set, names a bare JSON array of
	// SpectrumAnalyzer entries parsed by ParseSpectrumAnalyzersFile.
	SpectrumAnalyzerConfigPath string `koanf:"spectrumanalyzerconfigpath"`

	// ThermalScannerConfigPath, if set, names a bare JSON array of
	// ThermalScanner entries parsed by ParseThermalScannersFile.
	ThermalScannerConfigPath string `koanf:"thermalscannerconfigpath"`

	// ControllerClientConfigPath, if set, names a bare JSON array of
	// ControllerClient entries parsed by ParseControllerClientsFile.
	ControllerClientConfigPath string `koanf:"controllerclientconfigpath"`
}

// DefaultProcess is the zero-configuration starting point, mirroring the
// teacher's habit of seeding koanf from a struct literal of defaults before
// any file is loaded.
var DefaultProcess = Process{
	BindAddr:         ":5000",
	LogLevel:         "info",
	DeviceConfigPath: "devices.json",
}

// LoadProcess seeds a koanf instance with DefaultProcess, then overlays
// path (a YAML file) if it exists. A missing file is not an error; every
// other load failure is.
func LoadProcess(path string) (Process, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultProcess, "koanf"), nil); err != nil {
		return Process{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such") {
			return Process{}, err
		}
	}
	var p Process
	if err := k.Unmarshal("", &p); err != nil {
		return Process{}, err
	}
	return p, nil
}
