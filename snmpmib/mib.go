/*Package snmpmib holds the in-process MIB tree the SNMP data client walks:
a static map from a telemetry field's symbolic name to its OID, its value
type, and whether it lives under an indexed (per-row) table entry or a
plain scalar. It plays the same role here that the teacher's decode
package plays for line-oriented sensors: a small, data-driven table that
keeps wire-format knowledge out of the client's read loop.

The tree root names and the sysDescr OID are the ones confirmed against
the upstream MIB tree (the "system" subtree is the standard SNMPv2-MIB
one; "pdu", "xups", and "schneiderPm5xxx" sit under "enterprises", with
"xups" nested one level further under "eaton"). The specific leaf OIDs
below are this client's own assignment of a representative outlet/UPS/
power-meter MIB, chosen to exercise every extraction rule the data client
implements (indexed tables, tens-of-Hz frequency fields, scalar floats,
scalar ints) rather than transcribed from a vendor MIB file.
*/
package snmpmib

// FieldType is the wire representation a MIB leaf decodes to.
type FieldType int

const (
	TypeInt FieldType = iota
	TypeFloat
	TypeString
)

// Entry is one leaf (or indexed-table column) of the MIB tree.
type Entry struct {
	OID     string
	Type    FieldType
	Indexed bool // true when this leaf is a column of an indexed table
}

// SystemOID is the root of the standard SNMPv2-MIB "system" group.
const SystemOID = "1.3.6.1.2.1.1"

// SysDescrOID is the scalar system-description leaf, walked once at setup
// and cached as the client's system description.
const SysDescrOID = "1.3.6.1.2.1.1.1"

const (
	enterprisesOID = "1.3.6.1.4.1"
	eatonOID       = enterprisesOID + ".534"

	pduOID             = enterprisesOID + ".318.1.1.12"
	xupsOID            = eatonOID + ".1"
	schneiderPm5xxxOID = enterprisesOID + ".3833.1.1.3"
)

// DeviceRootOID returns the root OID of a device type's own subtree, the
// one walked on every poll (as opposed to SystemOID, walked once at setup).
func DeviceRootOID(deviceType string) (string, bool) {
	switch deviceType {
	case "pdu":
		return pduOID, true
	case "xups":
		return xupsOID, true
	case "schneiderPm5xxx":
		return schneiderPm5xxxOID, true
	default:
		return "", false
	}
}

// PDU maps tel_pdu's fields to their MIB entries.
var PDU = map[string]Entry{
	"InputVoltage":   {OID: pduOID + ".1.1", Type: TypeFloat},
	"InputFrequency": {OID: pduOID + ".1.2", Type: TypeFloat},
	"OutletCurrent":  {OID: pduOID + ".3.3.1.6", Type: TypeFloat, Indexed: true},
	"OutletStatus":   {OID: pduOID + ".3.3.1.4", Type: TypeInt, Indexed: true},
}

// XUPS maps tel_xups's fields to their MIB entries.
var XUPS = map[string]Entry{
	"InputVoltage":         {OID: xupsOID + ".1.1", Type: TypeFloat},
	"InputFrequency":       {OID: xupsOID + ".1.2", Type: TypeFloat},
	"OutputVoltage":        {OID: xupsOID + ".3.1", Type: TypeFloat},
	"OutputLoad":           {OID: xupsOID + ".3.2", Type: TypeFloat},
	"BatteryCapacity":      {OID: xupsOID + ".2.1", Type: TypeFloat},
	"BatteryTemperature":   {OID: xupsOID + ".2.2", Type: TypeFloat},
	"BatteryTimeRemaining": {OID: xupsOID + ".2.3", Type: TypeFloat},
}

// SchneiderPM5xxx maps tel_schneiderPm5xxx's fields to their MIB entries.
var SchneiderPM5xxx = map[string]Entry{
	"PhaseVoltage":  {OID: schneiderPm5xxxOID + ".3.1", Type: TypeFloat, Indexed: true},
	"PhaseCurrent":  {OID: schneiderPm5xxxOID + ".3.2", Type: TypeFloat, Indexed: true},
	"Frequency":     {OID: schneiderPm5xxxOID + ".2.1", Type: TypeFloat},
	"ActivePower":   {OID: schneiderPm5xxxOID + ".4.1", Type: TypeFloat},
	"ReactivePower": {OID: schneiderPm5xxxOID + ".4.2", Type: TypeFloat},
	"ApparentPower": {OID: schneiderPm5xxxOID + ".4.3", Type: TypeFloat},
}

// FieldsFor returns the field map for a device type, mirroring the Python
// client's "tel_{device_type}" topic field lookup.
func FieldsFor(deviceType string) (map[string]Entry, bool) {
	switch deviceType {
	case "pdu":
		return PDU, true
	case "xups":
		return XUPS, true
	case "schneiderPm5xxx":
		return SchneiderPM5xxx, true
	default:
		return nil, false
	}
}

// FrequencyOIDs is the short fixed list of OIDs reported in tens of Hertz,
// divided by 10 after parsing.
var FrequencyOIDs = map[string]bool{
	pduOID + ".1.2":             true,
	xupsOID + ".1.2":            true,
	schneiderPm5xxxOID + ".2.1": true,
}
