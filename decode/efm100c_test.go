package decode

import (
	"math"
	"testing"
)

func TestEFM100CDecodeValidFrame(t *testing.T) {
	d := efm100cDecoder{}
	got, err := d.Decode([]byte("$+05.23,0*1A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Float(0) != 5.23 {
		t.Fatalf("expected field 5.23, got %v", got.Float(0))
	}
	if got.Int(1) != 0 {
		t.Fatalf("expected fault 0, got %v", got.Int(1))
	}
}

func TestEFM100CDecodeUnparseableLineYieldsFault(t *testing.T) {
	d := efm100cDecoder{}
	got, err := d.Decode([]byte("garbage"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got.Float(0)) {
		t.Fatalf("expected NaN field, got %v", got.Float(0))
	}
	if got.Int(1) != 1 {
		t.Fatalf("expected fault 1, got %v", got.Int(1))
	}
}
