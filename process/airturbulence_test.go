package process

import (
	"testing"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestAirTurbulenceProcessorReportsAfterNumSamples(t *testing.T) {
	mock := &topics.Mock{}
	p := NewAirTurbulenceProcessor(AirTurbulenceConfig{SensorName: "csat1", NumSamples: 2, Topics: mock})

	reading := func(ts float64, diag int) telemetry.Reading {
		return telemetry.Reading{
			Timestamp:       ts,
			ResponseCode:    sensortype.OK,
			SensorTelemetry: telemetry.Data{1.0, 0.5, 0.1, 20.0, diag},
		}
	}
	p.Process(reading(1, 0))
	if len(mock.AirTurbulences) != 0 {
		t.Fatalf("expected no report yet, got %d", len(mock.AirTurbulences))
	}
	p.Process(reading(2, 0))
	if len(mock.AirTurbulences) != 1 {
		t.Fatalf("expected 1 report, got %d", len(mock.AirTurbulences))
	}
	if mock.SensorStatuses[len(mock.SensorStatuses)-1].SensorStatus != 0 {
		t.Errorf("expected clean diagnostic word, got %+v", mock.SensorStatuses)
	}
}

func TestAirTurbulenceProcessorDiagnosticWordMarksBadSample(t *testing.T) {
	mock := &topics.Mock{}
	p := NewAirTurbulenceProcessor(AirTurbulenceConfig{SensorName: "csat1", NumSamples: 2, Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{1.0, 0.5, 0.1, 20.0, 9},
	})
	if len(mock.SensorStatuses) != 0 {
		t.Fatalf("no report expected yet")
	}
	p.Process(telemetry.Reading{
		Timestamp:       2,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{1.0, 0.5, 0.1, 20.0, 9},
	})
	if len(mock.SensorStatuses) == 0 {
		t.Fatalf("expected bad-sample report after numSamples bad readings")
	}
	if mock.SensorStatuses[0].SensorStatus != 9 {
		t.Errorf("expected diagnostic word 9 republished, got %d", mock.SensorStatuses[0].SensorStatus)
	}
}
