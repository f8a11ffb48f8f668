package watermarklab

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Pixel planes are held as gonum dense matrices. Values are unconstrained
// real numbers while a plane moves through the pipeline; they are clamped to
// [0,255] and rounded only when rasterized back to integer samples.

// planeFromInts builds a float plane from integer samples.
func planeFromInts(p [][]int) *mat.Dense {
	rows := len(p)
	cols := len(p[0])
	m := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, float64(p[r][c]))
		}
	}
	return m
}

// planeToInts rasterizes a float plane to 8-bit integer samples, rounding
// and clamping each value to [0,255].
func planeToInts(m *mat.Dense) [][]int {
	rows, cols := m.Dims()
	p := make([][]int, rows)
	for r := 0; r < rows; r++ {
		p[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			p[r][c] = clamp255(math.Round(m.At(r, c)))
		}
	}
	return p
}

// clamp255 clamps a rounded sample to the 8-bit range.
func clamp255(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v)
}

// clonePlane returns an independent copy of a plane.
func clonePlane(m *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(m)
}

// clonePlaneInts returns an independent copy of an integer plane.
func clonePlaneInts(p [][]int) [][]int {
	out := make([][]int, len(p))
	for i, row := range p {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// planeData returns the plane's samples as one contiguous row-major slice.
// Views sliced out of a larger plane carry a stride wider than their column
// count, so the rows are repacked rather than aliased.
func planeData(m *mat.Dense) []float64 {
	raw := m.RawMatrix()
	if raw.Stride == raw.Cols {
		return raw.Data[:raw.Rows*raw.Cols]
	}
	out := make([]float64, raw.Rows*raw.Cols)
	for r := 0; r < raw.Rows; r++ {
		copy(out[r*raw.Cols:(r+1)*raw.Cols], raw.Data[r*raw.Stride:r*raw.Stride+raw.Cols])
	}
	return out
}

// sameDims reports whether two planes have identical dimensions.
func sameDims(a, b *mat.Dense) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}
