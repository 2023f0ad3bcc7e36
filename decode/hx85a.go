package decode

import (
	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.HX85A, newHX85ADecoder)
}

// hx85aTerminator is the two-byte LF-then-CR sequence this sensor model
// uses to end a frame, the mirror image of the usual CRLF.
var hx85aTerminator = []byte{'\n', '\r'}

// hx85aDecoder decodes the Omega HX85A humidity/temperature/dew-point
// frame: "%RH=rr.rr,AT°C=tt.tt,DP°C=dd.dd". The wire charset is
// ISO-8859-1 so that the degree sign round-trips.
type hx85aDecoder struct{}

func newHX85ADecoder(Options) Decoder { return hx85aDecoder{} }

func (hx85aDecoder) Terminator() []byte { return hx85aTerminator }

func (hx85aDecoder) Decode(line []byte) (telemetry.Data, error) {
	str := latin1ToString(line)
	vals, err := parseKVFrame(str, 3)
	if err != nil {
		return nil, err
	}
	return telemetry.Data{vals[0], vals[1], vals[2]}, nil
}
