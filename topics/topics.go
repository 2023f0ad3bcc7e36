/*Package topics defines the write-only telemetry/event surface that
processors publish to. It mirrors golaborate's generichttp pattern of
defining a narrow interface so a processor needs to know nothing about how a
topic is actually transported (SAL DDS, the controller-protocol TCP socket,
or, in tests, an in-memory recorder).
*/
package topics

// Temperature is the tel_temperature topic payload.
type Temperature struct {
	SensorName  string
	Timestamp   float64
	Temperature []float64
	NumChannels int
	Location    string
}

// RelativeHumidity is the tel_relativeHumidity topic payload.
type RelativeHumidity struct {
	SensorName       string
	Timestamp        float64
	RelativeHumidity float64
	Location         string
}

// DewPoint is the tel_dewPoint topic payload.
type DewPoint struct {
	SensorName string
	Timestamp  float64
	DewPoint   float64
	Location   string
}

// Pressure is the tel_pressure topic payload.
type Pressure struct {
	SensorName  string
	Timestamp   float64
	Pressure    []float64
	NumChannels int
	Location    string
}

// AirFlow is the tel_airFlow topic payload.
type AirFlow struct {
	SensorName      string
	Timestamp       float64
	Location        string
	Direction       float64
	DirectionStdDev float64
	Speed           float64
	SpeedStdDev     float64
	MaxSpeed        float64
}

// AirTurbulence is the tel_airTurbulence topic payload.
type AirTurbulence struct {
	SensorName             string
	Timestamp              float64
	Location               string
	Speed                  [3]float64
	SpeedMagnitude         float64
	SpeedMaxMagnitude      float64
	SpeedStdDev            [3]float64
	SonicTemperature       float64
	SonicTemperatureStdDev float64
}

// ElectricFieldStrength is the tel_electricFieldStrength topic payload.
type ElectricFieldStrength struct {
	SensorName     string
	Timestamp      float64
	Location       string
	Strength       float64
	StrengthStdDev float64
	StrengthMax    float64
}

// LightningStrikeStatus is the tel_lightningStrikeStatus topic payload.
type LightningStrikeStatus struct {
	SensorName       string
	Timestamp        float64
	CloseStrikeRate  float64
	TotalStrikeRate  float64
	CloseAlarmStatus int
	SevereAlarmStatus int
	Heading          float64
	Location         string
}

// SpectrumAnalyzer is the tel_spectrumAnalyzer topic payload.
type SpectrumAnalyzer struct {
	SensorName      string
	Location        string
	StartFrequency  float64
	StopFrequency   float64
	Spectrum        []float64
	Timestamp       float64
}

// ParticulateMatter is the tel_particulateMatter topic payload, carrying
// the SPS30's flat measurement set alongside the sensor identity fields.
type ParticulateMatter struct {
	SensorName           string
	Timestamp            float64
	ParticleSizes        [5]float64
	MassConcentrations   [5]float64
	NumberConcentrations [5]float64
	TypicalParticleSize  float64
	SensorLocationLabel  string
	Location             string
}

// PDU is the tel_pdu topic payload published by the SNMP data client for a
// rack power distribution unit.
type PDU struct {
	DeviceName        string
	Timestamp         float64
	SystemDescription string
	InputVoltage      float64
	InputFrequency    float64
	OutletCurrent     []float64
	OutletStatus      []int
}

// XUPS is the tel_xups topic payload published by the SNMP data client for
// an Eaton-style UPS.
type XUPS struct {
	DeviceName           string
	Timestamp            float64
	SystemDescription    string
	InputVoltage         float64
	InputFrequency       float64
	OutputVoltage        float64
	OutputLoad           float64
	BatteryCapacity      float64
	BatteryTemperature   float64
	BatteryTimeRemaining float64
}

// SchneiderPM5xxx is the tel_schneiderPm5xxx topic payload published by the
// SNMP data client for a Schneider Electric PM5xxx power meter.
type SchneiderPM5xxx struct {
	DeviceName        string
	Timestamp         float64
	SystemDescription string
	PhaseVoltage      []float64
	PhaseCurrent      []float64
	Frequency         float64
	ActivePower       float64
	ReactivePower     float64
	ApparentPower     float64
}

// SensorStatus is the evt_sensorStatus event payload.
type SensorStatus struct {
	SensorName   string
	SensorStatus int
	ServerStatus int
}

// LightningStrike is the evt_lightningStrike event payload.
type LightningStrike struct {
	SensorName         string
	CorrectedDistance  float64
	UncorrectedDistance float64
	Bearing            float64
}

// HighElectricField is the evt_highElectricField event payload.
type HighElectricField struct {
	SensorName string
	Strength   float64
}

// Precipitation is the evt_precipitation event payload, used by the
// weather-station client.
type Precipitation struct {
	SensorName string
	Timestamp  float64
	Raining    bool
}

// Topics is the full set of telemetry/event endpoints a processor may
// write to. Each method corresponds to one topic in the external interface
// and is expected to be non-blocking or to apply its own backpressure; a
// processor never retries a write.
type Topics interface {
	TelTemperature(Temperature) error
	TelRelativeHumidity(RelativeHumidity) error
	TelDewPoint(DewPoint) error
	TelPressure(Pressure) error
	TelAirFlow(AirFlow) error
	TelAirTurbulence(AirTurbulence) error
	TelElectricFieldStrength(ElectricFieldStrength) error
	TelLightningStrikeStatus(LightningStrikeStatus) error
	TelSpectrumAnalyzer(SpectrumAnalyzer) error
	TelParticulateMatter(ParticulateMatter) error
	TelPDU(PDU) error
	TelXUPS(XUPS) error
	TelSchneiderPM5xxx(SchneiderPM5xxx) error
	EvtSensorStatus(SensorStatus) error
	EvtLightningStrike(LightningStrike) error
	EvtHighElectricField(HighElectricField) error
	EvtPrecipitation(Precipitation) error
}
