package watermarklab

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestQuantizationMatrix_Quality100IsOnes(t *testing.T) {
	q, err := quantizationMatrix(8, 100, true)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if q.At(i, j) != 1 {
				t.Fatalf("[%d,%d]: got %v, want 1", i, j, q.At(i, j))
			}
		}
	}
}

func TestQuantizationMatrix_Quality50IsBaseTable(t *testing.T) {
	// alpha = 2 - 2*50/100 = 1, so the matrix equals the base table.
	q, err := quantizationMatrix(8, 50, true)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if q.At(i, j) != baseLumaTable[i][j] {
				t.Errorf("[%d,%d]: got %v, want %v", i, j, q.At(i, j), baseLumaTable[i][j])
			}
		}
	}
}

func TestQuantizationMatrix_AlphaRule(t *testing.T) {
	tests := []struct {
		quality int
		alpha   float64
	}{
		{25, 2},   // 50/25
		{10, 5},   // 50/10
		{75, 0.5}, // 2 - 1.5
		{90, 0.2}, // 2 - 1.8
	}
	for _, tt := range tests {
		q, err := quantizationMatrix(8, tt.quality, false)
		if err != nil {
			t.Fatalf("quality %d: %v", tt.quality, err)
		}
		want := baseChromaTable[0][0] * tt.alpha
		if math.Abs(q.At(0, 0)-want) > 1e-9 {
			t.Errorf("quality %d: got %v, want %v", tt.quality, q.At(0, 0), want)
		}
	}
}

func TestQuantizationMatrix_BlockSize16Replication(t *testing.T) {
	q, err := quantizationMatrix(16, 50, true)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			want := baseLumaTable[i/2][j/2]
			if q.At(i, j) != want {
				t.Fatalf("[%d,%d]: got %v, want base[%d][%d]=%v", i, j, q.At(i, j), i/2, j/2, want)
			}
		}
	}
}

func TestQuantizationMatrix_Errors(t *testing.T) {
	if _, err := quantizationMatrix(12, 50, true); !errors.Is(err, ErrInvalidBlockSize) {
		t.Errorf("block 12: got %v, want ErrInvalidBlockSize", err)
	}
	if _, err := quantizationMatrix(0, 50, true); !errors.Is(err, ErrInvalidBlockSize) {
		t.Errorf("block 0: got %v, want ErrInvalidBlockSize", err)
	}
	for _, quality := range []int{0, 101, -5} {
		if _, err := quantizationMatrix(8, quality, true); !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("quality %d: got %v, want ErrInvalidQuality", quality, err)
		}
	}
}

func TestQuantize_Quality100RoundtripExact(t *testing.T) {
	m := testPlane(24, 24)
	q, err := quantizePlane(m, 8, 100, true)
	if err != nil {
		t.Fatalf("quantize: %v", err)
	}
	back, err := dequantizePlane(q, 8, 100, true)
	if err != nil {
		t.Fatalf("dequantize: %v", err)
	}
	if !mat.Equal(m, back) {
		t.Error("quality 100 roundtrip must be exact")
	}
}

func TestRoundQuotient_AsymmetricRule(t *testing.T) {
	tests := []struct {
		q    float64
		want float64
	}{
		{0.123, 0.12},   // |q| < 0.2: two decimals
		{-0.156, -0.16},
		{0.19999, 0.2},
		{0.25, 0.3},     // |q| >= 0.2: one decimal (half away from zero)
		{-0.34, -0.3},
		{1.26, 1.3},
		{12.34, 12.3},
	}
	for _, tt := range tests {
		if got := roundQuotient(tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("roundQuotient(%v): got %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestQuantize_EdgeBlocksCopiedThrough(t *testing.T) {
	// 10x10 with block size 8: only the top-left 8x8 window quantizes.
	m := testPlane(10, 10)
	q, err := quantizePlane(m, 8, 50, true)
	if err != nil {
		t.Fatalf("quantize: %v", err)
	}
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			if (r >= 8 || c >= 8) && q.At(r, c) != m.At(r, c) {
				t.Fatalf("edge sample (%d,%d) modified", r, c)
			}
		}
	}
}

func TestQuantize_DequantizeApproximates(t *testing.T) {
	// Quantization rounds quotients to at most one decimal, so after
	// dequantization every sample is within 0.05 * divisor of the input.
	m := testPlane(16, 16)
	q, err := quantizePlane(m, 8, 50, true)
	if err != nil {
		t.Fatalf("quantize: %v", err)
	}
	back, err := dequantizePlane(q, 8, 50, true)
	if err != nil {
		t.Fatalf("dequantize: %v", err)
	}
	qm, _ := quantizationMatrix(8, 50, true)
	for r := 0; r < 16; r++ {
		for c := 0; c < 16; c++ {
			bound := qm.At(r%8, c%8)*0.05 + 1e-9
			if diff := math.Abs(back.At(r, c) - m.At(r, c)); diff > bound {
				t.Fatalf("(%d,%d): error %v exceeds %v", r, c, diff, bound)
			}
		}
	}
}
