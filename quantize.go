// Quality-scaled quantization.
//
// Quantization matrices derive from the standard JPEG 8x8 base tables
// (Annex K), scaled to the requested block size by nearest-lower-index
// replication and to the requested quality factor by the usual piecewise
// alpha rule. Quality 100 short-circuits to an identity pass so that a
// quantize/dequantize round trip at quality 100 is exact.
package watermarklab

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Standard JPEG Annex K base tables.
var baseLumaTable = [8][8]float64{
	{16, 11, 10, 16, 24, 40, 51, 61},
	{12, 12, 14, 19, 26, 58, 60, 55},
	{14, 13, 16, 24, 40, 57, 69, 56},
	{14, 17, 22, 29, 51, 87, 80, 62},
	{18, 22, 37, 56, 68, 109, 103, 77},
	{24, 35, 55, 64, 81, 104, 113, 92},
	{49, 64, 78, 87, 103, 121, 120, 101},
	{72, 92, 95, 98, 112, 100, 103, 99},
}

var baseChromaTable = [8][8]float64{
	{17, 18, 24, 47, 99, 99, 99, 99},
	{18, 21, 26, 66, 99, 99, 99, 99},
	{24, 26, 56, 99, 99, 99, 99, 99},
	{47, 66, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
}

// quantizationMatrix builds the NxN divisor table for the given block size,
// quality factor and plane type. The block size must be a positive multiple
// of 8 so the 8x8 base table can be replicated onto it.
func quantizationMatrix(blockSize, quality int, luma bool) (*mat.Dense, error) {
	if blockSize < 8 || blockSize%8 != 0 {
		return nil, fmt.Errorf("%w: quantizer needs a multiple of 8, got %d", ErrInvalidBlockSize, blockSize)
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	q := mat.NewDense(blockSize, blockSize, nil)
	if quality == 100 {
		for i := 0; i < blockSize; i++ {
			for j := 0; j < blockSize; j++ {
				q.Set(i, j, 1)
			}
		}
		return q, nil
	}
	var alpha float64
	if quality >= 50 {
		alpha = 2 - 2*float64(quality)/100
	} else {
		alpha = 50 / float64(quality)
	}
	base := &baseLumaTable
	if !luma {
		base = &baseChromaTable
	}
	scale := blockSize / 8
	for i := 0; i < blockSize; i++ {
		for j := 0; j < blockSize; j++ {
			q.Set(i, j, base[i/scale][j/scale]*alpha)
		}
	}
	return q, nil
}

// quantizePlane divides every complete NxN window elementwise by the
// quantization matrix. Quotients are rounded to 2 decimals when their
// magnitude is below 0.2 and to 1 decimal otherwise; this asymmetric rule
// keeps small coefficients from collapsing to zero prematurely. At quality
// 100 the plane is returned as an untouched copy.
func quantizePlane(m *mat.Dense, blockSize, quality int, luma bool) (*mat.Dense, error) {
	q, err := quantizationMatrix(blockSize, quality, luma)
	if err != nil {
		return nil, err
	}
	if quality == 100 {
		return clonePlane(m), nil
	}
	return applyBlockwise(m, blockSize, func(block *mat.Dense) *mat.Dense {
		out := mat.NewDense(blockSize, blockSize, nil)
		for i := 0; i < blockSize; i++ {
			for j := 0; j < blockSize; j++ {
				out.Set(i, j, roundQuotient(block.At(i, j)/q.At(i, j)))
			}
		}
		return out
	}), nil
}

// dequantizePlane multiplies every complete NxN window elementwise by the
// same quantization matrix used to quantize it.
func dequantizePlane(m *mat.Dense, blockSize, quality int, luma bool) (*mat.Dense, error) {
	q, err := quantizationMatrix(blockSize, quality, luma)
	if err != nil {
		return nil, err
	}
	if quality == 100 {
		return clonePlane(m), nil
	}
	return applyBlockwise(m, blockSize, func(block *mat.Dense) *mat.Dense {
		out := mat.NewDense(blockSize, blockSize, nil)
		for i := 0; i < blockSize; i++ {
			for j := 0; j < blockSize; j++ {
				out.Set(i, j, block.At(i, j)*q.At(i, j))
			}
		}
		return out
	}), nil
}

func roundQuotient(q float64) float64 {
	if math.Abs(q) < 0.2 {
		return math.Round(q*100) / 100
	}
	return math.Round(q*10) / 10
}
