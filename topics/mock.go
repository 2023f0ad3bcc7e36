package topics

import "sync"

var _ Topics = (*Mock)(nil)

// Mock is a Topics implementation that records every write it receives, for
// use in processor tests that need to assert on published telemetry without
// a real SAL/DDS or controller-protocol transport.
type Mock struct {
	mu sync.Mutex

	Temperatures           []Temperature
	RelativeHumidities     []RelativeHumidity
	DewPoints              []DewPoint
	Pressures              []Pressure
	AirFlows               []AirFlow
	AirTurbulences         []AirTurbulence
	ElectricFieldStrengths []ElectricFieldStrength
	LightningStrikeStatuses []LightningStrikeStatus
	SpectrumAnalyzers      []SpectrumAnalyzer
	ParticulateMatters     []ParticulateMatter
	PDUs                   []PDU
	XUPSs                  []XUPS
	SchneiderPM5xxxs       []SchneiderPM5xxx
	SensorStatuses         []SensorStatus
	LightningStrikes       []LightningStrike
	HighElectricFields     []HighElectricField
	Precipitations         []Precipitation
}

// Lock and Unlock expose Mock's internal mutex so a test polling a slice
// field from a separate goroutine than the one writing it can do so
// safely, without each caller needing its own copy of the same lock.
func (m *Mock) Lock()   { m.mu.Lock() }
func (m *Mock) Unlock() { m.mu.Unlock() }

func (m *Mock) TelTemperature(v Temperature) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Temperatures = append(m.Temperatures, v)
	return nil
}

func (m *Mock) TelRelativeHumidity(v RelativeHumidity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RelativeHumidities = append(m.RelativeHumidities, v)
	return nil
}

func (m *Mock) TelDewPoint(v DewPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DewPoints = append(m.DewPoints, v)
	return nil
}

func (m *Mock) TelPressure(v Pressure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pressures = append(m.Pressures, v)
	return nil
}

func (m *Mock) TelAirFlow(v AirFlow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AirFlows = append(m.AirFlows, v)
	return nil
}

func (m *Mock) TelAirTurbulence(v AirTurbulence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AirTurbulences = append(m.AirTurbulences, v)
	return nil
}

func (m *Mock) TelElectricFieldStrength(v ElectricFieldStrength) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ElectricFieldStrengths = append(m.ElectricFieldStrengths, v)
	return nil
}

func (m *Mock) TelLightningStrikeStatus(v LightningStrikeStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LightningStrikeStatuses = append(m.LightningStrikeStatuses, v)
	return nil
}

func (m *Mock) TelSpectrumAnalyzer(v SpectrumAnalyzer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SpectrumAnalyzers = append(m.SpectrumAnalyzers, v)
	return nil
}

func (m *Mock) TelParticulateMatter(v ParticulateMatter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ParticulateMatters = append(m.ParticulateMatters, v)
	return nil
}

func (m *Mock) TelPDU(v PDU) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PDUs = append(m.PDUs, v)
	return nil
}

func (m *Mock) TelXUPS(v XUPS) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.XUPSs = append(m.XUPSs, v)
	return nil
}

func (m *Mock) TelSchneiderPM5xxx(v SchneiderPM5xxx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchneiderPM5xxxs = append(m.SchneiderPM5xxxs, v)
	return nil
}

func (m *Mock) EvtSensorStatus(v SensorStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SensorStatuses = append(m.SensorStatuses, v)
	return nil
}

func (m *Mock) EvtLightningStrike(v LightningStrike) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LightningStrikes = append(m.LightningStrikes, v)
	return nil
}

func (m *Mock) EvtHighElectricField(v HighElectricField) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HighElectricFields = append(m.HighElectricFields, v)
	return nil
}

func (m *Mock) EvtPrecipitation(v Precipitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Precipitations = append(m.Precipitations, v)
	return nil
}
