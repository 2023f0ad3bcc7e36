package process

import (
	"math"
	"testing"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestTemperatureProcessorPassesGoodChannels(t *testing.T) {
	mock := &topics.Mock{}
	p := NewTemperatureProcessor(TemperatureConfig{
		SensorName:  "temp1",
		Location:    "roof",
		NumChannels: 2,
		Topics:      mock,
	})
	p.Process(telemetry.Reading{
		SensorName:      "temp1",
		Timestamp:       100,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{21.0, 22.0},
	})

	if len(mock.Temperatures) != 1 {
		t.Fatalf("expected 1 temperature record, got %d", len(mock.Temperatures))
	}
	got := mock.Temperatures[0]
	if got.Temperature[0] != 21.0 || got.Temperature[1] != 22.0 {
		t.Errorf("unexpected temperatures: %v", got.Temperature)
	}
	if len(mock.SensorStatuses) != 1 || mock.SensorStatuses[0].ServerStatus != int(sensortype.OK) {
		t.Errorf("unexpected sensor status: %+v", mock.SensorStatuses)
	}
}

func TestTemperatureProcessorUnusedChannelForcedNaN(t *testing.T) {
	mock := &topics.Mock{}
	p := NewTemperatureProcessor(TemperatureConfig{
		SensorName:  "temp1",
		Location:    "roof,unused",
		NumChannels: 2,
		Topics:      mock,
	})
	p.Process(telemetry.Reading{
		Timestamp:       100,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{21.0, 22.0},
	})

	got := mock.Temperatures[0]
	if got.Temperature[0] != 21.0 {
		t.Errorf("channel 0 should pass through, got %v", got.Temperature[0])
	}
	if !math.IsNaN(got.Temperature[1]) {
		t.Errorf("channel 1 marked unused should be NaN, got %v", got.Temperature[1])
	}
}

func TestTemperatureProcessorBadReadingAllNaN(t *testing.T) {
	mock := &topics.Mock{}
	p := NewTemperatureProcessor(TemperatureConfig{
		SensorName:  "temp1",
		NumChannels: 2,
		Topics:      mock,
	})
	p.Process(telemetry.Reading{
		Timestamp:       100,
		ResponseCode:    sensortype.DeviceReadError,
		SensorTelemetry: nil,
	})

	got := mock.Temperatures[0]
	for i, v := range got.Temperature {
		if !math.IsNaN(v) {
			t.Errorf("channel %d should be NaN on read error, got %v", i, v)
		}
	}
}

func TestTemperatureProcessorWiderTopicThanChannels(t *testing.T) {
	mock := &topics.Mock{}
	p := NewTemperatureProcessor(TemperatureConfig{
		SensorName:  "temp1",
		NumChannels: 1,
		TopicWidth:  3,
		Topics:      mock,
	})
	p.Process(telemetry.Reading{
		Timestamp:       100,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{21.0},
	})

	got := mock.Temperatures[0]
	if len(got.Temperature) != 3 {
		t.Fatalf("expected topic width 3, got %d", len(got.Temperature))
	}
	if got.Temperature[0] != 21.0 {
		t.Errorf("channel 0 expected 21.0, got %v", got.Temperature[0])
	}
	if !math.IsNaN(got.Temperature[1]) || !math.IsNaN(got.Temperature[2]) {
		t.Errorf("padding channels should be NaN, got %v", got.Temperature)
	}
}
