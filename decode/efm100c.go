package decode

import (
	"math"
	"regexp"
	"strconv"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.EFM100C, newEFM100CDecoder)
}

// efm100cPattern matches a Boltek EFM-100C frame "$+EE.EE,F*CS\r\n". The
// hex checksum is part of the wire format but, per the instrument's own
// interface description, is not independently verified here.
var efm100cPattern = regexp.MustCompile(`^\$([+-]\d\d\.\d\d),([01])\*[0-9a-fA-F]{2}$`)

type efm100cDecoder struct{}

func newEFM100CDecoder(Options) Decoder { return efm100cDecoder{} }

func (efm100cDecoder) Terminator() []byte { return defaultTerminator }

func (efm100cDecoder) Decode(line []byte) (telemetry.Data, error) {
	m := efm100cPattern.FindSubmatch(line)
	if m == nil {
		return telemetry.Data{math.NaN(), 1}, nil
	}
	field, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return telemetry.Data{math.NaN(), 1}, nil
	}
	fault, err := strconv.Atoi(string(m[2]))
	if err != nil {
		return telemetry.Data{math.NaN(), 1}, nil
	}
	return telemetry.Data{field, fault}, nil
}
