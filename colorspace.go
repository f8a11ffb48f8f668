// Color space conversion between 8-bit RGB and YCbCr.
//
// The conversion uses the SDTV (ITU-R BT.601) studio-range matrix with
// explicit offsets, the form used throughout standard-definition JPEG-style
// pipelines:
//
//	Y  =  0.257 R + 0.504 G + 0.098 B + 16
//	Cb = -0.148 R - 0.291 G + 0.439 B + 128
//	Cr =  0.439 R - 0.368 G - 0.071 B + 128
//
// The inverse rounds each channel and clamps to [0,255]. Because the
// coefficient pairs are not exact inverses of one another and the inverse
// rounds, a forward/inverse round trip is close but not bit-exact.
package watermarklab

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// rgbToYCbCr converts integer RGB planes to float YCbCr planes.
// All three input planes must share dimensions.
func rgbToYCbCr(r, g, b [][]int) (y, cb, cr *mat.Dense) {
	rows := len(r)
	cols := len(r[0])
	y = mat.NewDense(rows, cols, nil)
	cb = mat.NewDense(rows, cols, nil)
	cr = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rf := float64(r[i][j])
			gf := float64(g[i][j])
			bf := float64(b[i][j])
			y.Set(i, j, 0.257*rf+0.504*gf+0.098*bf+16)
			cb.Set(i, j, -0.148*rf-0.291*gf+0.439*bf+128)
			cr.Set(i, j, 0.439*rf-0.368*gf-0.071*bf+128)
		}
	}
	return y, cb, cr
}

// ycbcrToRGB converts float YCbCr planes back to integer RGB planes,
// rounding and clamping each channel to [0,255].
func ycbcrToRGB(y, cb, cr *mat.Dense) (r, g, b [][]int) {
	rows, cols := y.Dims()
	r = make([][]int, rows)
	g = make([][]int, rows)
	b = make([][]int, rows)
	for i := 0; i < rows; i++ {
		r[i] = make([]int, cols)
		g[i] = make([]int, cols)
		b[i] = make([]int, cols)
		for j := 0; j < cols; j++ {
			yf := y.At(i, j) - 16
			cbf := cb.At(i, j) - 128
			crf := cr.At(i, j) - 128
			r[i][j] = clamp255(math.Round(1.164*yf + 1.596*crf))
			g[i][j] = clamp255(math.Round(1.164*yf - 0.813*crf - 0.391*cbf))
			b[i][j] = clamp255(math.Round(1.164*yf + 2.018*cbf))
		}
	}
	return r, g, b
}
