package decode

import (
	"math"
	"testing"
)

func TestHX85ADecodeFullFrame(t *testing.T) {
	d := hx85aDecoder{}
	line := []byte("%RH=45.23,AT\xb0C=21.50,DP\xb0C=09.12")
	got, err := d.Decode(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Float(0) != 45.23 || got.Float(1) != 21.50 || got.Float(2) != 9.12 {
		t.Fatalf("unexpected decode: %v", got)
	}
}

func TestHX85ADecodeMissingLeadingFieldPadsNaN(t *testing.T) {
	d := hx85aDecoder{}
	got, err := d.Decode([]byte("DP\xb0C=09.12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got.Float(0)) || !math.IsNaN(got.Float(1)) {
		t.Fatalf("expected first two fields NaN, got %v", got)
	}
	if got.Float(2) != 9.12 {
		t.Fatalf("expected dew point preserved, got %v", got)
	}
}
