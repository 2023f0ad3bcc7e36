package decode

import (
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/statx"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.HX85BA, newHX85BADecoder)
}

// hx85baDecoder decodes the Omega HX85BA humidity/temperature/pressure
// frame: "%RH=rr.rr,AT°C=tt.tt,Pmb=ppp.pp". Dew point is not transmitted;
// it is derived from RH and T via the Magnus formula at decode time.
type hx85baDecoder struct{}

func newHX85BADecoder(Options) Decoder { return hx85baDecoder{} }

func (hx85baDecoder) Terminator() []byte { return hx85aTerminator }

func (hx85baDecoder) Decode(line []byte) (telemetry.Data, error) {
	str := latin1ToString(line)
	vals, err := parseKVFrame(str, 3)
	if err != nil {
		return nil, err
	}
	rh, t, p := vals[0], vals[1], vals[2]
	dp := statx.DewPointMagnus(rh, t)
	return telemetry.Data{rh, t, p, dp}, nil
}
