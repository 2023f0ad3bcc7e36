package process

import (
	"math"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestEfm100cProcessorHighFieldArmsTimerAndEmits(t *testing.T) {
	mock := &topics.Mock{}
	p := NewEfm100cProcessor(Efm100cConfig{
		SensorName:   "efm1",
		NumSamples:   1,
		SafeInterval: time.Hour,
		Threshold:    5.0,
		Topics:       mock,
	})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{10.0, 0},
	})

	if len(mock.HighElectricFields) != 1 {
		t.Fatalf("expected 1 high-field event, got %d", len(mock.HighElectricFields))
	}
	if mock.HighElectricFields[0].Strength != 5.0 {
		t.Errorf("expected threshold value published, got %v", mock.HighElectricFields[0].Strength)
	}
	if len(mock.ElectricFieldStrengths) != 1 {
		t.Fatalf("expected 1 strength record, got %d", len(mock.ElectricFieldStrengths))
	}
}

func TestEfm100cProcessorClearedEmittedBeforeAnyHighReading(t *testing.T) {
	// Mirrors the original's make_done_future() initialization: the "not
	// currently counting down" check is true even before any high reading
	// has ever been seen, so the first low reading already emits "cleared".
	mock := &topics.Mock{}
	p := NewEfm100cProcessor(Efm100cConfig{
		SensorName:   "efm1",
		NumSamples:   1,
		SafeInterval: time.Hour,
		Threshold:    5.0,
		Topics:       mock,
	})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{1.0, 0},
	})

	if len(mock.HighElectricFields) != 1 {
		t.Fatalf("expected 1 cleared event, got %d", len(mock.HighElectricFields))
	}
	if !math.IsNaN(mock.HighElectricFields[0].Strength) {
		t.Errorf("expected NaN strength for cleared signal, got %v", mock.HighElectricFields[0].Strength)
	}
}

func TestEfm100cProcessorClearedRepublishesEveryFrameWhileNotArmed(t *testing.T) {
	mock := &topics.Mock{}
	p := NewEfm100cProcessor(Efm100cConfig{
		SensorName:   "efm1",
		NumSamples:   1,
		SafeInterval: time.Hour,
		Threshold:    5.0,
		Topics:       mock,
	})

	for i := 0; i < 3; i++ {
		p.Process(telemetry.Reading{
			Timestamp:       float64(i),
			ResponseCode:    sensortype.OK,
			SensorTelemetry: telemetry.Data{1.0, 0},
		})
	}

	if len(mock.HighElectricFields) != 3 {
		t.Fatalf("expected the cleared signal on every frame while not armed, got %d", len(mock.HighElectricFields))
	}
}

func TestEfm100cProcessorNoClearedWhileArmed(t *testing.T) {
	mock := &topics.Mock{}
	p := NewEfm100cProcessor(Efm100cConfig{
		SensorName:   "efm1",
		NumSamples:   1,
		SafeInterval: time.Hour,
		Threshold:    5.0,
		Topics:       mock,
	})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{10.0, 0},
	})
	p.Process(telemetry.Reading{
		Timestamp:       2,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{1.0, 0},
	})

	if len(mock.HighElectricFields) != 1 {
		t.Fatalf("expected only the initial high-field event while timer is armed, got %d", len(mock.HighElectricFields))
	}
}
