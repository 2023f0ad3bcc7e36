package process

import (
	"testing"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestWindsonicProcessorReportsAfterNumSamples(t *testing.T) {
	mock := &topics.Mock{}
	p := NewWindsonicProcessor(WindsonicConfig{SensorName: "ws1", NumSamples: 2, Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{90.0, 5.0},
	})
	if len(mock.AirFlows) != 0 {
		t.Fatalf("expected no report before numSamples reached, got %d", len(mock.AirFlows))
	}

	p.Process(telemetry.Reading{
		Timestamp:       2,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{100.0, 7.0},
	})
	if len(mock.AirFlows) != 1 {
		t.Fatalf("expected 1 report, got %d", len(mock.AirFlows))
	}
	if len(mock.SensorStatuses) != 1 {
		t.Errorf("expected 1 sensor status alongside report, got %d", len(mock.SensorStatuses))
	}
}
