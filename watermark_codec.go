package watermarklab

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EmbedParams selects a watermarking method together with its parameters.
// Exactly one concrete type exists per method, so method-specific settings
// are carried without runtime casts of loose value arrays.
type EmbedParams interface {
	// Method identifies the embedding method the parameters belong to.
	Method() Method
	// Describe returns a short parameter summary for reports.
	Describe() string
}

// LSBParams configures spatial bit-plane embedding.
type LSBParams struct {
	// BitPlane is the bit position to overwrite, 0 (LSB) through 7 (MSB).
	BitPlane int
	// Permute scrambles the watermark with Key before embedding.
	Permute bool
	// Key seeds the permutation when Permute is set.
	Key string
}

// Method returns MethodLSB.
func (LSBParams) Method() Method { return MethodLSB }

// Describe returns a short parameter summary for reports.
func (p LSBParams) Describe() string {
	return fmt.Sprintf("bitplane=%d permute=%t", p.BitPlane, p.Permute)
}

// DCTParams configures frequency-domain coefficient-pair embedding.
type DCTParams struct {
	// BlockSize is the transform block size.
	BlockSize int
	// Coef1 and Coef2 are the (row, col) transform-domain positions whose
	// relative magnitude encodes each bit.
	Coef1, Coef2 [2]int
	// Strength is the minimum enforced gap between the two coefficients.
	Strength float64
	// Permute scrambles the watermark with Key before embedding.
	Permute bool
	// Key seeds the permutation when Permute is set.
	Key string
}

// Method returns MethodDCT.
func (DCTParams) Method() Method { return MethodDCT }

// Describe returns a short parameter summary for reports.
func (p DCTParams) Describe() string {
	return fmt.Sprintf("block=%d c1=(%d,%d) c2=(%d,%d) strength=%g permute=%t",
		p.BlockSize, p.Coef1[0], p.Coef1[1], p.Coef2[0], p.Coef2[1], p.Strength, p.Permute)
}

// Embed writes the watermark into a copy of the host plane using the method
// the parameters select. The host plane is not modified.
func Embed(plane *mat.Dense, wm *Watermark, params EmbedParams) (*mat.Dense, error) {
	switch p := params.(type) {
	case LSBParams:
		return embedLSB(plane, wm, p)
	case DCTParams:
		return embedDCT(plane, wm, p)
	default:
		return nil, fmt.Errorf("unknown watermarking parameters %T", params)
	}
}

// Extract recovers a width x height watermark from a plane using the method
// the parameters select. Parameters must match those used to embed.
func Extract(plane *mat.Dense, width, height int, params EmbedParams) (*Watermark, error) {
	switch p := params.(type) {
	case LSBParams:
		return extractLSB(plane, width, height, p)
	case DCTParams:
		return extractDCT(plane, width, height, p)
	default:
		return nil, fmt.Errorf("unknown watermarking parameters %T", params)
	}
}
