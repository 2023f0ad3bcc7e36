package decode

import (
	"math"
	"strconv"
	"strings"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.CSAT3B, newCSAT3BDecoder)
}

// csat3bAllNaN is the output produced whenever the frame is short or its
// signature fails to verify: the three velocity components and sonic
// temperature become NaN, the two flag/int fields and the signature itself
// become 0.
var csat3bAllNaN = telemetry.Data{
	math.NaN(), math.NaN(), math.NaN(), math.NaN(), 0, 0, 0,
}

// csat3bDecoder decodes the Campbell Scientific CSAT3B 3-D anemometer
// frame "ux,uy,uz,T,d,c,sig<CR>". sig is a CRC-like signature computed over
// the preceding fields; a decoded record is only trusted if the recomputed
// signature matches the transmitted one.
type csat3bDecoder struct{}

func newCSAT3BDecoder(Options) Decoder { return csat3bDecoder{} }

func (csat3bDecoder) Terminator() []byte { return []byte{'\r'} }

func (csat3bDecoder) Decode(line []byte) (telemetry.Data, error) {
	str := strings.TrimRight(string(line), "\r\n")
	fields := strings.Split(str, ",")
	if len(fields) != 7 {
		return csat3bAllNaN, nil
	}

	// The manual's description of which bytes are signed (through the
	// count field "c") does not match the instrument in practice: only
	// the four velocity/temperature fields plus the diagnostic word "d"
	// are signed, not the running count "c" or the signature itself.
	signedPortion := strings.Join(fields[:5], ",")
	gotSig := computeCSAT3BSignature(signedPortion)

	wantSig, err := strconv.ParseUint(fields[6], 16, 32)
	if err != nil {
		return csat3bAllNaN, nil
	}
	if uint32(gotSig) != uint32(wantSig) {
		return csat3bAllNaN, nil
	}

	ux, err1 := strconv.ParseFloat(fields[0], 64)
	uy, err2 := strconv.ParseFloat(fields[1], 64)
	uz, err3 := strconv.ParseFloat(fields[2], 64)
	t, err4 := strconv.ParseFloat(fields[3], 64)
	d, err5 := strconv.Atoi(fields[4])
	c, err6 := strconv.Atoi(fields[5])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
		return csat3bAllNaN, nil
	}

	return telemetry.Data{ux, uy, uz, t, d, c, int(wantSig)}, nil
}

// computeCSAT3BSignature computes the CSAT3B signature of s, the
// comma-joined "ux,uy,uz,T,d" fields with no trailing comma. See the CSAT3B
// manual, p.55; the description there (signing through "c") does not match
// the instrument, and Decode passes exactly the portion found to match it.
func computeCSAT3BSignature(s string) uint16 {
	const seed = 0xAAAA
	msb := byte(seed >> 8)
	lsb := byte(seed % 0x100)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		b := (lsb << 1) + msb + ch
		if lsb&0x80 != 0 {
			b++
		}
		msb = lsb
		lsb = b
	}
	return uint16(msb)<<8 | uint16(lsb)
}
