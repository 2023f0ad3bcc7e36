package dataclient

import (
	"testing"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestNewSNMPClientRejectsUnknownDeviceType(t *testing.T) {
	_, err := NewSNMPClient(SNMPConfig{DeviceType: "bogus", Topics: &topics.Mock{}})
	if err == nil {
		t.Fatal("want error for unknown SNMP device type")
	}
}

func TestSNMPClientPublishesPDU(t *testing.T) {
	mock := &topics.Mock{}
	c, err := NewSNMPClient(SNMPConfig{DeviceType: sensortype.PDU, DeviceName: "pdu1", Topics: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.systemDescription = "test pdu"

	err = c.publish(map[string]any{
		"InputVoltage":   208.0,
		"InputFrequency": 60.0,
		"OutletCurrent":  []float64{1.1, 2.2, 3.3},
		"OutletStatus":   []int{1, 1, 0},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mock.PDUs) != 1 {
		t.Fatalf("want 1 published PDU record, got %d", len(mock.PDUs))
	}
	got := mock.PDUs[0]
	if got.DeviceName != "pdu1" || got.SystemDescription != "test pdu" || got.InputVoltage != 208.0 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.OutletCurrent) != 3 || got.OutletCurrent[2] != 3.3 {
		t.Fatalf("unexpected OutletCurrent: %v", got.OutletCurrent)
	}
}

func TestSNMPClientPublishesXUPS(t *testing.T) {
	mock := &topics.Mock{}
	c, err := NewSNMPClient(SNMPConfig{DeviceType: sensortype.XUPS, DeviceName: "ups1", Topics: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = c.publish(map[string]any{
		"InputVoltage": 120.0, "InputFrequency": 60.0, "OutputVoltage": 120.0,
		"OutputLoad": 42.0, "BatteryCapacity": 100.0, "BatteryTemperature": 25.0,
		"BatteryTimeRemaining": 600.0,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mock.XUPSs) != 1 || mock.XUPSs[0].OutputLoad != 42.0 {
		t.Fatalf("unexpected record: %+v", mock.XUPSs)
	}
}

func TestSNMPClientPublishesSchneiderPM5xxx(t *testing.T) {
	mock := &topics.Mock{}
	c, err := NewSNMPClient(SNMPConfig{DeviceType: sensortype.SchneiderPM5xxx, DeviceName: "meter1", Topics: mock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = c.publish(map[string]any{
		"PhaseVoltage": []float64{208, 209, 207}, "PhaseCurrent": []float64{10, 11, 9},
		"Frequency": 60.0, "ActivePower": 1000.0, "ReactivePower": 200.0, "ApparentPower": 1020.0,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mock.SchneiderPM5xxxs) != 1 || mock.SchneiderPM5xxxs[0].ActivePower != 1000.0 {
		t.Fatalf("unexpected record: %+v", mock.SchneiderPM5xxxs)
	}
}
