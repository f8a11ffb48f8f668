// Objective image fidelity metrics.
package watermarklab

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SSIM stabilization constants for 8-bit dynamic range.
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// MSE returns the mean squared error between two planes.
func MSE(orig, mod *mat.Dense) (float64, error) {
	if !sameDims(orig, mod) {
		return 0, ErrDimensionMismatch
	}
	rows, cols := orig.Dims()
	sum := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d := orig.At(r, c) - mod.At(r, c)
			sum += d * d
		}
	}
	return sum / float64(rows*cols), nil
}

// MAE returns the mean absolute error between two planes.
func MAE(orig, mod *mat.Dense) (float64, error) {
	sae, err := SAE(orig, mod)
	if err != nil {
		return 0, err
	}
	rows, cols := orig.Dims()
	return sae / float64(rows*cols), nil
}

// SAE returns the sum of absolute errors between two planes.
func SAE(orig, mod *mat.Dense) (float64, error) {
	if !sameDims(orig, mod) {
		return 0, ErrDimensionMismatch
	}
	rows, cols := orig.Dims()
	sum := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sum += math.Abs(orig.At(r, c) - mod.At(r, c))
		}
	}
	return sum, nil
}

// PSNRFromMSE converts a mean squared error to peak signal-to-noise ratio
// in decibels for 8-bit samples. A zero MSE yields +Inf.
func PSNRFromMSE(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

// PSNR returns the peak signal-to-noise ratio between two planes.
func PSNR(orig, mod *mat.Dense) (float64, error) {
	mse, err := MSE(orig, mod)
	if err != nil {
		return 0, err
	}
	return PSNRFromMSE(mse), nil
}

// PSNRForRGB returns the PSNR computed from three per-channel mean squared
// errors; the channel MSEs are averaged before the decibel conversion.
func PSNRForRGB(mseR, mseG, mseB float64) float64 {
	return PSNRFromMSE((mseR + mseG + mseB) / 3)
}

// SSIM returns the global structural similarity index between two planes,
// using whole-image mean, sample variance and sample covariance.
func SSIM(orig, mod *mat.Dense) (float64, error) {
	if !sameDims(orig, mod) {
		return 0, ErrDimensionMismatch
	}
	return ssimFlat(planeData(orig), planeData(mod)), nil
}

// MSSIM returns the mean structural similarity over non-overlapping 8x8
// blocks. Incomplete trailing blocks are excluded from the average.
func MSSIM(orig, mod *mat.Dense) (float64, error) {
	if !sameDims(orig, mod) {
		return 0, ErrDimensionMismatch
	}
	rows, cols := orig.Dims()
	const n = 8
	sum := 0.0
	count := 0
	a := make([]float64, n*n)
	b := make([]float64, n*n)
	for r0 := 0; r0+n <= rows; r0 += n {
		for c0 := 0; c0+n <= cols; c0 += n {
			k := 0
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					a[k] = orig.At(r0+i, c0+j)
					b[k] = mod.At(r0+i, c0+j)
					k++
				}
			}
			sum += ssimFlat(a, b)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func ssimFlat(a, b []float64) float64 {
	muA := stat.Mean(a, nil)
	muB := stat.Mean(b, nil)
	varA := stat.Variance(a, nil)
	varB := stat.Variance(b, nil)
	cov := stat.Covariance(a, b, nil)
	num := (2*muA*muB + ssimC1) * (2*cov + ssimC2)
	den := (muA*muA + muB*muB + ssimC1) * (varA + varB + ssimC2)
	return num / den
}
