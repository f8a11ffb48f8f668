package watermarklab

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const transformTolerance = 1e-9

func TestTransformBasis_Orthonormal(t *testing.T) {
	tests := []struct {
		kind TransformKind
		n    int
	}{
		{TransformDCT, 4},
		{TransformDCT, 8},
		{TransformDCT, 12},
		{TransformWalshHadamard, 4},
		{TransformWalshHadamard, 8},
		{TransformHaar, 8},
		{TransformHaar, 16},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			a, err := transformBasis(tt.kind, tt.n)
			if err != nil {
				t.Fatalf("basis: %v", err)
			}
			var prod mat.Dense
			prod.Mul(a, a.T())
			for i := 0; i < tt.n; i++ {
				for j := 0; j < tt.n; j++ {
					want := 0.0
					if i == j {
						want = 1
					}
					if math.Abs(prod.At(i, j)-want) > transformTolerance {
						t.Fatalf("%v(%d): A·Aᵗ[%d,%d] = %v, want %v", tt.kind, tt.n, i, j, prod.At(i, j), want)
					}
				}
			}
		})
	}
}

func TestDCTBasis_FirstRowConstant(t *testing.T) {
	a, err := transformBasis(TransformDCT, 8)
	if err != nil {
		t.Fatalf("basis: %v", err)
	}
	want := math.Sqrt(1.0 / 8)
	for j := 0; j < 8; j++ {
		if math.Abs(a.At(0, j)-want) > transformTolerance {
			t.Errorf("row 0 col %d: got %v, want %v", j, a.At(0, j), want)
		}
	}
}

func TestTransform_Roundtrip(t *testing.T) {
	kinds := []TransformKind{TransformDCT, TransformWalshHadamard, TransformHaar}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			m := testPlane(32, 24)
			fwd, err := forwardTransformPlane(m, kind, 8)
			if err != nil {
				t.Fatalf("forward: %v", err)
			}
			back, err := inverseTransformPlane(fwd, kind, 8)
			if err != nil {
				t.Fatalf("inverse: %v", err)
			}
			if !mat.EqualApprox(m, back, transformTolerance) {
				t.Errorf("%v roundtrip did not recover the plane", kind)
			}
		})
	}
}

func TestTransform_PartialEdgeCopiedThrough(t *testing.T) {
	// 20x13 with block size 8: rows 16-19 and cols 8-12 are partial
	// windows and must pass through untouched.
	m := testPlane(20, 13)
	fwd, err := forwardTransformPlane(m, TransformDCT, 8)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	for r := 0; r < 20; r++ {
		for c := 0; c < 13; c++ {
			if r >= 16 || c >= 8 {
				if fwd.At(r, c) != m.At(r, c) {
					t.Fatalf("edge sample (%d,%d) modified: got %v, want %v", r, c, fwd.At(r, c), m.At(r, c))
				}
			}
		}
	}
}

func TestWalshHadamard_RequiresPowerOfTwo(t *testing.T) {
	for _, n := range []int{3, 6, 12} {
		if _, err := transformBasis(TransformWalshHadamard, n); !errors.Is(err, ErrInvalidBlockSize) {
			t.Errorf("WHT size %d: got %v, want ErrInvalidBlockSize", n, err)
		}
		if _, err := transformBasis(TransformHaar, n); !errors.Is(err, ErrInvalidBlockSize) {
			t.Errorf("Haar size %d: got %v, want ErrInvalidBlockSize", n, err)
		}
	}
}

func TestTransformBasis_UnknownKind(t *testing.T) {
	if _, err := transformBasis(TransformKind(99), 8); !errors.Is(err, ErrUnsupportedTransform) {
		t.Errorf("got %v, want ErrUnsupportedTransform", err)
	}
}

func TestWalshHadamard_Values(t *testing.T) {
	a, err := transformBasis(TransformWalshHadamard, 2)
	if err != nil {
		t.Fatalf("basis: %v", err)
	}
	inv := 1 / math.Sqrt2
	want := [][]float64{{inv, inv}, {inv, -inv}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(a.At(i, j)-want[i][j]) > transformTolerance {
				t.Errorf("[%d,%d]: got %v, want %v", i, j, a.At(i, j), want[i][j])
			}
		}
	}
}
