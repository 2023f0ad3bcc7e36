package decode

import (
	"math"
	"testing"
)

func TestTemperatureDecodeFullFrame(t *testing.T) {
	d := &temperatureDecoder{numChannels: 4}
	got, err := d.Decode([]byte("C00=0021.1224,C01=0021.1243,C02=0020.9992,C03=9999.9990"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{21.1224, 21.1243, 20.9992, math.NaN()}
	for i, w := range want {
		g := got.Float(i)
		if math.IsNaN(w) {
			if !math.IsNaN(g) {
				t.Errorf("index %d: want NaN, got %v", i, g)
			}
			continue
		}
		if g != w {
			t.Errorf("index %d: want %v, got %v", i, w, g)
		}
	}
}

func TestTemperatureDecodeTruncatedLeadingFragment(t *testing.T) {
	d := &temperatureDecoder{numChannels: 4}
	got, err := d.Decode([]byte("0021.1224,C02=0021.1243,C03=0020.9992"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got.Float(0)) || !math.IsNaN(got.Float(1)) {
		t.Fatalf("expected first two channels NaN, got %v", got)
	}
	if got.Float(2) != 21.1243 || got.Float(3) != 20.9992 {
		t.Fatalf("expected keyed channels preserved, got %v", got)
	}
}

func TestTemperatureDecodeDoubleEqualsIsError(t *testing.T) {
	d := &temperatureDecoder{numChannels: 2}
	if _, err := d.Decode([]byte("C00=1=2,C01=3")); err == nil {
		t.Fatal("expected error for field with more than one '='")
	}
}
