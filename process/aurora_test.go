package process

import (
	"testing"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestAuroraProcessorPublishesThreeChannelTemperature(t *testing.T) {
	mock := &topics.Mock{}
	p := NewAuroraProcessor(AuroraConfig{SensorName: "aurora1", Location: "roof", Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       10,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{1, -10.0, -30.0, -20.0, 0.0, 0.0, 2},
	})

	if len(mock.Temperatures) != 1 {
		t.Fatalf("expected 1 temperature record, got %d", len(mock.Temperatures))
	}
	got := mock.Temperatures[0]
	if len(got.Temperature) != 3 || got.NumChannels != 3 {
		t.Fatalf("expected a 3-channel temperature record, got %+v", got)
	}
	if got.Temperature[0] != -10.0 || got.Temperature[1] != -30.0 || got.Temperature[2] != -20.0 {
		t.Errorf("unexpected ambient/sky/clarity values: %v", got.Temperature)
	}
	if len(mock.SensorStatuses) != 1 || mock.SensorStatuses[0].SensorStatus != 2 {
		t.Errorf("expected alarm code 2 republished as sensorStatus, got %+v", mock.SensorStatuses)
	}
}
