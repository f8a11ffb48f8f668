package watermarklab

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// planeOf builds a rows x cols plane filled with one value.
func planeOf(rows, cols int, v float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, v)
		}
	}
	return m
}

// testPlane builds a rows x cols plane with a deterministic gradient
// pattern covering most of the 8-bit range.
func testPlane(rows, cols int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, float64((r*31+c*7+r*c)%256))
		}
	}
	return m
}

func TestPlaneToInts_ClampsAndRounds(t *testing.T) {
	m := mat.NewDense(1, 4, []float64{-3.2, 12.6, 254.5, 300})
	got := planeToInts(m)
	want := []int{0, 13, 255, 255}
	for i, w := range want {
		if got[0][i] != w {
			t.Errorf("col %d: got %d, want %d", i, got[0][i], w)
		}
	}
}

func TestPlaneFromInts_Roundtrip(t *testing.T) {
	p := [][]int{{0, 1, 2}, {253, 254, 255}}
	got := planeToInts(planeFromInts(p))
	for r := range p {
		for c := range p[r] {
			if got[r][c] != p[r][c] {
				t.Errorf("(%d,%d): got %d, want %d", r, c, got[r][c], p[r][c])
			}
		}
	}
}
