package process

import (
	"math"
	"testing"
	"time"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
	"github.jpl.nasa.gov/ems/skywatch/topics"
)

func TestLd250ProcessorStrikeArmsTimerAndEmitsDistance(t *testing.T) {
	mock := &topics.Mock{}
	p := NewLd250Processor(Ld250Config{SensorName: "ld1", SafeInterval: time.Hour, Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{ld250StrikePrefix, 3.0, 3.2, 270.0},
	})

	if len(mock.LightningStrikes) != 1 {
		t.Fatalf("expected 1 strike event, got %d", len(mock.LightningStrikes))
	}
	got := mock.LightningStrikes[0]
	if got.CorrectedDistance != 3.0 || got.UncorrectedDistance != 3.2 || got.Bearing != 270.0 {
		t.Errorf("unexpected strike fields: %+v", got)
	}
}

func TestLd250ProcessorClearedBeforeAnyStrike(t *testing.T) {
	mock := &topics.Mock{}
	p := NewLd250Processor(Ld250Config{SensorName: "ld1", SafeInterval: time.Hour, Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{ld250StatusPrefix, 0.0, 0.0, 1, 1, 180.0},
	})

	if len(mock.LightningStrikes) != 1 {
		t.Fatalf("expected a cleared event before any strike, got %d", len(mock.LightningStrikes))
	}
	got := mock.LightningStrikes[0]
	if !math.IsInf(got.CorrectedDistance, 1) || !math.IsInf(got.UncorrectedDistance, 1) || got.Bearing != 0 {
		t.Errorf("unexpected cleared-signal fields: %+v", got)
	}
}

func TestLd250ProcessorStatusFrameAlarmFields(t *testing.T) {
	mock := &topics.Mock{}
	p := NewLd250Processor(Ld250Config{SensorName: "ld1", SafeInterval: time.Hour, Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{ld250StatusPrefix, 2.0, 5.0, 0, 1, 90.0},
	})

	if len(mock.LightningStrikeStatuses) != 1 {
		t.Fatalf("expected 1 status record, got %d", len(mock.LightningStrikeStatuses))
	}
	got := mock.LightningStrikeStatuses[0]
	if got.CloseAlarmStatus != 1 {
		t.Errorf("close alarm status 0 on wire should map to 1 (alarm clear), got %d", got.CloseAlarmStatus)
	}
	if got.SevereAlarmStatus != 0 {
		t.Errorf("severe alarm status 1 on wire should map to 0, got %d", got.SevereAlarmStatus)
	}
}

func TestLd250ProcessorNoiseFrameMarksStatusBad(t *testing.T) {
	mock := &topics.Mock{}
	p := NewLd250Processor(Ld250Config{SensorName: "ld1", SafeInterval: time.Hour, Topics: mock})

	p.Process(telemetry.Reading{
		Timestamp:       1,
		ResponseCode:    sensortype.OK,
		SensorTelemetry: telemetry.Data{ld250NoisePrefix},
	})

	if len(mock.SensorStatuses) != 1 || mock.SensorStatuses[0].SensorStatus != 1 {
		t.Errorf("noise frame should set sensorStatus=1, got %+v", mock.SensorStatuses)
	}
	got := mock.LightningStrikeStatuses[0]
	if !math.IsNaN(got.CloseStrikeRate) {
		t.Errorf("noise frame should leave strike rate NaN, got %v", got.CloseStrikeRate)
	}
}
