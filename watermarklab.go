// Package watermarklab is a research testbed for block-based image transform
// coding and digital image watermarking.
//
// The package implements a JPEG-like processing pipeline (color-space
// conversion, chroma subsampling, block transforms, quantization) together
// with spatial (LSB) and frequency-domain (DCT) watermark embedding,
// a set of attack simulators, and quantitative quality scoring
// (MSE/PSNR/SSIM for fidelity, BER/NC for watermark survival).
//
// Basic usage for watermark embedding:
//
//	state := watermarklab.NewImageState(img)
//	state.ConvertToYCbCr()
//	luma, _ := state.Plane(watermarklab.ComponentY)
//	marked, err := watermarklab.Embed(luma, wm, watermarklab.LSBParams{BitPlane: 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state.SetPlane(watermarklab.ComponentY, marked)
//	state.ConvertToRGB()
//
// Batch robustness evaluation over attack/method combinations is provided by
// the Harness type; see its documentation.
package watermarklab

// TransformKind identifies a block transform basis.
type TransformKind int

const (
	// TransformDCT is the type-II discrete cosine transform.
	TransformDCT TransformKind = iota
	// TransformWalshHadamard is the normalized Walsh-Hadamard transform.
	TransformWalshHadamard
	// TransformHaar is the orthonormal Haar wavelet transform.
	TransformHaar
)

// String returns the string representation of the transform kind.
func (k TransformKind) String() string {
	switch k {
	case TransformDCT:
		return "DCT"
	case TransformWalshHadamard:
		return "WHT"
	case TransformHaar:
		return "Haar"
	default:
		return "Unknown"
	}
}

// SamplingMode identifies a chroma subsampling pattern.
type SamplingMode int

const (
	// Sampling444 keeps full chroma resolution.
	Sampling444 SamplingMode = iota
	// Sampling422 halves chroma horizontally.
	Sampling422
	// Sampling420 halves chroma in both directions.
	Sampling420
	// Sampling411 quarters chroma horizontally.
	Sampling411
)

// String returns the string representation of the sampling mode.
func (m SamplingMode) String() string {
	switch m {
	case Sampling444:
		return "4:4:4"
	case Sampling422:
		return "4:2:2"
	case Sampling420:
		return "4:2:0"
	case Sampling411:
		return "4:1:1"
	default:
		return "Unknown"
	}
}

// Component identifies one plane of a YCbCr image.
type Component int

const (
	// ComponentY is the luma plane.
	ComponentY Component = iota
	// ComponentCb is the blue-difference chroma plane.
	ComponentCb
	// ComponentCr is the red-difference chroma plane.
	ComponentCr
)

// String returns the string representation of the component.
func (c Component) String() string {
	switch c {
	case ComponentY:
		return "Y"
	case ComponentCb:
		return "Cb"
	case ComponentCr:
		return "Cr"
	default:
		return "Unknown"
	}
}

// Method identifies a watermark embedding method.
type Method int

const (
	// MethodLSB embeds into a spatial bit-plane.
	MethodLSB Method = iota
	// MethodDCT embeds into the relative magnitude of two DCT coefficients.
	MethodDCT
)

// String returns the string representation of the method.
func (m Method) String() string {
	switch m {
	case MethodLSB:
		return "LSB"
	case MethodDCT:
		return "DCT"
	default:
		return "Unknown"
	}
}
