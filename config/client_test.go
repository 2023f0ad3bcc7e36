package config

import "testing"

func TestParseControllerClientAppliesDefaults(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.5","num_samples":20,"safe_interval":5,"threshold":1.0,"devices":[{"device_type":"Serial","name":"t1","sensor_type":"Temperature","serial_port":"/dev/ttyS0","channels":4}]}`)
	c, err := ParseControllerClient(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Port != DefaultControllerPort {
		t.Fatalf("want default port %d, got %d", DefaultControllerPort, c.Port)
	}
	if c.MaxReadTimeouts != DefaultMaxReadTimeouts {
		t.Fatalf("want default max_read_timeouts %d, got %d", DefaultMaxReadTimeouts, c.MaxReadTimeouts)
	}
	if c.RateLimit != DefaultRateLimitHz {
		t.Fatalf("want default rate_limit %v, got %v", DefaultRateLimitHz, c.RateLimit)
	}
}

func TestParseControllerClientRequiresNumSamplesAtLeastTwo(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.5","num_samples":1,"devices":[{"device_type":"Serial","name":"t1","sensor_type":"Temperature","serial_port":"/dev/ttyS0","channels":4}]}`)
	if _, err := ParseControllerClient(doc); err == nil {
		t.Fatal("expected error for num_samples < 2")
	}
}

func TestParseControllerClientRequiresAtLeastOneDevice(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.5","num_samples":20}`)
	if _, err := ParseControllerClient(doc); err == nil {
		t.Fatal("expected error for missing devices")
	}
}

func TestParseTCPSensorsFileParsesEachEntry(t *testing.T) {
	doc := []byte(`[{"host":"10.0.0.1","port":9000,"name":"tcp1","sensor_type":"Temperature","channels":1,"poll_interval":1}]`)
	sensors, err := ParseTCPSensorsFile(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sensors) != 1 || sensors[0].BaudRate != DefaultBaudRate {
		t.Fatalf("want 1 sensor with default baud rate, got %+v", sensors)
	}
}

func TestParseControllerClientsFileRejectsMalformedEntry(t *testing.T) {
	doc := []byte(`[{"host":"10.0.0.5","num_samples":1}]`)
	if _, err := ParseControllerClientsFile(doc); err == nil {
		t.Fatal("expected error for invalid controller client entry")
	}
}

func TestParseThermalScannerAppliesValidation(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.3","port":5000,"sensor_name":"GEC"}`)
	c, err := ParseThermalScanner(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SensorName != "GEC" {
		t.Fatalf("want sensor_name GEC, got %q", c.SensorName)
	}

	bad := []byte(`{"port":5000,"sensor_name":"GEC"}`)
	if _, err := ParseThermalScanner(bad); err == nil {
		t.Fatal("expected error for missing host")
	}
}

func TestParseSNMPDeviceAppliesDefaults(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.9","device_name":"rack-pdu-1","device_type":"pdu"}`)
	c, err := ParseSNMPDevice(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Port != DefaultSNMPPort {
		t.Fatalf("want default port %d, got %d", DefaultSNMPPort, c.Port)
	}
	if c.SNMPCommunity != DefaultSNMPCommunity {
		t.Fatalf("want default community %q, got %q", DefaultSNMPCommunity, c.SNMPCommunity)
	}
}

func TestParseSNMPDeviceRejectsUnknownDeviceType(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.9","device_name":"rack-pdu-1","device_type":"toaster"}`)
	if _, err := ParseSNMPDevice(doc); err == nil {
		t.Fatal("expected error for unrecognized device_type")
	}
}

func TestParseSpectrumAnalyzerValidatesFrequencyUnit(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.2","port":5025,"sensor_name":"sa1","freq_start_unit":"furlongs"}`)
	if _, err := ParseSpectrumAnalyzer(doc); err == nil {
		t.Fatal("expected error for invalid frequency unit")
	}
}

func TestParseSpectrumAnalyzerAccepts(t *testing.T) {
	doc := []byte(`{"host":"10.0.0.2","port":5025,"sensor_name":"sa1","freq_start_value":9,"freq_start_unit":"kHz","freq_stop_value":3,"freq_stop_unit":"GHz"}`)
	c, err := ParseSpectrumAnalyzer(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.FreqStopUnit != GHz {
		t.Fatalf("want GHz, got %v", c.FreqStopUnit)
	}
}
