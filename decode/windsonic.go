package decode

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.jpl.nasa.gov/ems/skywatch/sensortype"
	"github.jpl.nasa.gov/ems/skywatch/telemetry"
)

func init() {
	Register(sensortype.Windsonic, newWindsonicDecoder)
}

const (
	stx = 0x02
	etx = 0x03
)

// windsonicDecoder decodes the Gill Windsonic 2-D anemometer frame
// "\x02Q,ddd,sss.ss,M,00,\x03CS<CR><LF>", where CS is a two-hex-character
// XOR checksum of the bytes strictly between STX and ETX.
type windsonicDecoder struct{}

func newWindsonicDecoder(Options) Decoder { return windsonicDecoder{} }

func (windsonicDecoder) Terminator() []byte { return defaultTerminator }

func (windsonicDecoder) Decode(line []byte) (telemetry.Data, error) {
	if len(line) == 0 {
		return telemetry.Data{math.NaN(), math.NaN()}, nil
	}
	stxIdx := -1
	etxIdx := -1
	for i, b := range line {
		if b == stx && stxIdx == -1 {
			stxIdx = i
		}
		if b == etx {
			etxIdx = i
			break
		}
	}
	if stxIdx == -1 || etxIdx == -1 || etxIdx+2 >= len(line) {
		return nil, fmt.Errorf("decode: windsonic line is missing STX/ETX framing")
	}

	body := line[stxIdx+1 : etxIdx]
	csBytes := line[etxIdx+1 : etxIdx+3]
	wantCS, err := strconv.ParseUint(string(csBytes), 16, 8)
	if err != nil {
		return nil, fmt.Errorf("decode: windsonic checksum %q is not hex: %w", csBytes, err)
	}

	var gotCS byte
	for _, b := range body {
		gotCS ^= b
	}
	if gotCS != byte(wantCS) {
		return telemetry.Data{math.NaN(), math.NaN()}, nil
	}

	fields := strings.Split(string(body), ",")
	if len(fields) < 5 {
		return nil, fmt.Errorf("decode: windsonic body %q has too few fields", body)
	}
	if status := strings.TrimSpace(fields[4]); status != "00" {
		log.Printf("decode: windsonic status %q is not 00", status)
	}

	direction := math.NaN()
	dirField := strings.TrimSpace(fields[1])
	if dirField != "" && dirField != "999" {
		d, err := strconv.Atoi(dirField)
		if err != nil {
			return nil, fmt.Errorf("decode: windsonic direction %q is not an int: %w", dirField, err)
		}
		direction = float64(d)
	}

	speed := math.NaN()
	speedField := strings.TrimSpace(fields[2])
	if speedField != "" && speedField != sensortype.DisconnectedValue {
		s, err := strconv.ParseFloat(speedField, 64)
		if err != nil {
			return nil, fmt.Errorf("decode: windsonic speed %q is not a float: %w", speedField, err)
		}
		speed = s
	}

	return telemetry.Data{direction, speed}, nil
}
