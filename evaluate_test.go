package watermarklab

import (
	"errors"
	"math"
	"testing"
)

func TestBER_Identical(t *testing.T) {
	wm := randomWatermark(16, 16, 10)
	ber, err := BER(wm, wm)
	if err != nil {
		t.Fatalf("BER: %v", err)
	}
	if ber != 0 {
		t.Errorf("got %v, want 0", ber)
	}
}

func TestBER_Complement(t *testing.T) {
	wm := randomWatermark(16, 16, 11)
	inv := NewWatermark(16, 16)
	for r := range wm.Bits {
		for c := range wm.Bits[r] {
			inv.Bits[r][c] = !wm.Bits[r][c]
		}
	}
	ber, err := BER(wm, inv)
	if err != nil {
		t.Fatalf("BER: %v", err)
	}
	if ber != 1 {
		t.Errorf("got %v, want 1", ber)
	}
}

func TestBERNC_DimensionMismatch(t *testing.T) {
	a := NewWatermark(8, 8)
	b := NewWatermark(8, 9)
	if _, err := BER(a, b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("BER: got %v, want ErrDimensionMismatch", err)
	}
	if _, err := NC(a, b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("NC: got %v, want ErrDimensionMismatch", err)
	}
}

func TestNC_Bounds(t *testing.T) {
	wm := randomWatermark(16, 16, 12)
	nc, err := NC(wm, wm)
	if err != nil {
		t.Fatalf("NC: %v", err)
	}
	if math.Abs(nc-1) > 1e-12 {
		t.Errorf("identical: got %v, want 1", nc)
	}
	inv := NewWatermark(16, 16)
	for r := range wm.Bits {
		for c := range wm.Bits[r] {
			inv.Bits[r][c] = !wm.Bits[r][c]
		}
	}
	nc, err = NC(wm, inv)
	if err != nil {
		t.Fatalf("NC: %v", err)
	}
	if math.Abs(nc+1) > 1e-12 {
		t.Errorf("complement: got %v, want -1", nc)
	}
}

func TestRatingScale_Bands(t *testing.T) {
	s := DefaultRatingScale
	tests := []struct {
		ber, nc float64
		want    string
	}{
		{0.01, 0.99, "Excellent"},
		{0.049, 0.951, "Excellent"},
		{0.05, 0.99, "Good"}, // BER band edge is exclusive
		{0.10, 0.90, "Good"},
		{0.20, 0.80, "Fair"},
		{0.40, 0.99, "Poor"}, // worst of the two bands wins
		{0.01, 0.50, "Poor"},
		{0.10, 0.70, "Poor"},
	}
	for _, tt := range tests {
		if got := s.Rate(tt.ber, tt.nc); got != tt.want {
			t.Errorf("Rate(%v, %v): got %q, want %q", tt.ber, tt.nc, got, tt.want)
		}
	}
}

func TestRatingScale_NCEdges(t *testing.T) {
	s := DefaultRatingScale
	if tier := s.RateNC(0.95); tier != 1 {
		t.Errorf("NC 0.95 (not above bound): got tier %d, want 1", tier)
	}
	if tier := s.RateNC(0.9501); tier != 0 {
		t.Errorf("NC 0.9501: got tier %d, want 0", tier)
	}
	if tier := s.RateNC(0.75); tier != 3 {
		t.Errorf("NC 0.75: got tier %d, want 3", tier)
	}
}
