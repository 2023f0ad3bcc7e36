package decode

import (
	"testing"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
)

func TestNewReturnsRegisteredDecoder(t *testing.T) {
	d, err := New(sensortype.CSAT3B, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil {
		t.Fatal("expected non-nil decoder")
	}
}

func TestNewUnknownSensorTypeIsError(t *testing.T) {
	if _, err := New(sensortype.SensorType("bogus"), Options{}); err == nil {
		t.Fatal("expected error for unregistered sensor type")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(sensortype.CSAT3B, newCSAT3BDecoder)
}
