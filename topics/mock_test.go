package topics

import "testing"

func TestMockRecordsWrites(t *testing.T) {
	m := &Mock{}
	if err := m.TelAirFlow(AirFlow{SensorName: "anemo1", Speed: 3.2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.AirFlows) != 1 || m.AirFlows[0].SensorName != "anemo1" {
		t.Fatalf("expected one recorded airflow write, got %+v", m.AirFlows)
	}
	if err := m.EvtSensorStatus(SensorStatus{SensorName: "anemo1", SensorStatus: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.SensorStatuses) != 1 {
		t.Fatalf("expected one recorded sensor status event, got %d", len(m.SensorStatuses))
	}
}
