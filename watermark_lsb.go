// Spatial bit-plane watermarking.
package watermarklab

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// embedLSB overwrites one bit plane of the host with the watermark bits.
// Host samples are floored to integers before the bit is set, so embedding
// into a fractional-valued plane discards the fraction at marked positions.
func embedLSB(plane *mat.Dense, wm *Watermark, p LSBParams) (*mat.Dense, error) {
	if p.BitPlane < 0 || p.BitPlane > 7 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBitPlane, p.BitPlane)
	}
	rows, cols := plane.Dims()
	if wm.Height() > rows || wm.Width() > cols {
		return nil, fmt.Errorf("%w: watermark %dx%d, plane %dx%d",
			ErrWatermarkTooLarge, wm.Width(), wm.Height(), cols, rows)
	}
	bits := wm
	if p.Permute {
		bits = wm.Permute(p.Key)
	}
	out := clonePlane(plane)
	mask := 1 << p.BitPlane
	for r := 0; r < bits.Height(); r++ {
		for c := 0; c < bits.Width(); c++ {
			v := int(plane.At(r, c)) &^ mask
			if bits.Bits[r][c] {
				v |= mask
			}
			out.Set(r, c, float64(v))
		}
	}
	return out, nil
}

// extractLSB reads one bit plane over the requested region and undoes the
// permutation when the embedding was permuted.
func extractLSB(plane *mat.Dense, width, height int, p LSBParams) (*Watermark, error) {
	if p.BitPlane < 0 || p.BitPlane > 7 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBitPlane, p.BitPlane)
	}
	rows, cols := plane.Dims()
	if height > rows || width > cols {
		return nil, fmt.Errorf("%w: region %dx%d, plane %dx%d",
			ErrWatermarkTooLarge, width, height, cols, rows)
	}
	wm := NewWatermark(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			wm.Bits[r][c] = int(plane.At(r, c))>>p.BitPlane&1 == 1
		}
	}
	if p.Permute {
		wm = wm.Unpermute(p.Key)
	}
	return wm, nil
}
