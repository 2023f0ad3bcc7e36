package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProcessMissingFileUsesDefaults(t *testing.T) {
	p, err := LoadProcess("does-not-exist.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != DefaultProcess {
		t.Fatalf("want defaults %+v, got %+v", DefaultProcess, p)
	}
}

func TestLoadProcessOverlaysSensorKindPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skywatchd.yml")
	yml := `
bindaddr: ":6000"
tcpsensorconfigpath: tcpsensors.json
snmpdeviceconfigpath: snmpdevices.json
spectrumanalyzerconfigpath: spectrum.json
thermalscannerconfigpath: thermal.json
controllerclientconfigpath: controllerclients.json
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := LoadProcess(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BindAddr != ":6000" {
		t.Fatalf("bindaddr not overlaid: %+v", p)
	}
	if p.TCPSensorConfigPath != "tcpsensors.json" ||
		p.SNMPDeviceConfigPath != "snmpdevices.json" ||
		p.SpectrumAnalyzerConfigPath != "spectrum.json" ||
		p.ThermalScannerConfigPath != "thermal.json" ||
		p.ControllerClientConfigPath != "controllerclients.json" {
		t.Fatalf("sensor-kind paths not overlaid: %+v", p)
	}
	// Untouched defaults should survive the overlay.
	if p.DeviceConfigPath != DefaultProcess.DeviceConfigPath {
		t.Fatalf("device config path should keep default, got %q", p.DeviceConfigPath)
	}
}
