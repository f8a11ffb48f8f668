// ImageState: the pipeline state machine.
//
// An ImageState owns the original RGB integer planes of one image plus,
// after conversion, a YCbCr triplet of float planes. Every stage operation
// past the conversion requires the YCbCr planes and fails with ErrNotYCbCr
// otherwise; nothing is silently skipped. Inverse operations reuse the
// parameters recorded by their matching forward operation, so a mismatched
// inverse is unrepresentable through this API.
//
// An ImageState has a single logical owner. It carries no internal locking;
// concurrent mutation through two references is the caller's bug.
package watermarklab

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// ImageState carries one image through the transform-coding pipeline.
type ImageState struct {
	r, g, b [][]int

	y, cb, cr *mat.Dense
	converted bool

	sampling SamplingMode
	sampled  bool

	quantBlock   int
	quantQuality int
	quantized    bool

	transKind TransformKind
	transSize int
	transSet  bool
}

// NewImageState captures the RGB planes of a decoded image.
func NewImageState(img image.Image) *ImageState {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	s := &ImageState{
		r: make([][]int, h),
		g: make([][]int, h),
		b: make([][]int, h),
	}
	for y := 0; y < h; y++ {
		s.r[y] = make([]int, w)
		s.g[y] = make([]int, w)
		s.b[y] = make([]int, w)
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			s.r[y][x] = int(r >> 8)
			s.g[y][x] = int(g >> 8)
			s.b[y][x] = int(b >> 8)
		}
	}
	return s
}

// NewImageStateFromPlanes captures pre-decoded RGB planes. The three planes
// must share dimensions.
func NewImageStateFromPlanes(r, g, b [][]int) (*ImageState, error) {
	if len(r) == 0 || len(r[0]) == 0 {
		return nil, ErrDimensionMismatch
	}
	if len(g) != len(r) || len(b) != len(r) ||
		len(g[0]) != len(r[0]) || len(b[0]) != len(r[0]) {
		return nil, ErrDimensionMismatch
	}
	return &ImageState{
		r: clonePlaneInts(r),
		g: clonePlaneInts(g),
		b: clonePlaneInts(b),
	}, nil
}

// Width returns the image width in pixels.
func (s *ImageState) Width() int { return len(s.r[0]) }

// Height returns the image height in pixels.
func (s *ImageState) Height() int { return len(s.r) }

// Clone returns an independent copy of the state, planes included.
func (s *ImageState) Clone() *ImageState {
	out := *s
	out.r = clonePlaneInts(s.r)
	out.g = clonePlaneInts(s.g)
	out.b = clonePlaneInts(s.b)
	if s.converted {
		out.y = clonePlane(s.y)
		out.cb = clonePlane(s.cb)
		out.cr = clonePlane(s.cr)
	}
	return &out
}

// ConvertToYCbCr recomputes the YCbCr planes from the stored original RGB
// planes, overwriting any existing YCbCr data and resetting downstream
// stage tracking.
func (s *ImageState) ConvertToYCbCr() {
	s.y, s.cb, s.cr = rgbToYCbCr(s.r, s.g, s.b)
	s.converted = true
	s.sampled = false
	s.quantized = false
	s.transSet = false
}

// ConvertToRGB rewrites the RGB planes from the current Y/Cb/Cr planes,
// discarding the prior RGB data. If the chroma planes are downsampled they
// are replicated back to the luma dimensions for the conversion, using the
// recorded pattern; the stored planes are left downsampled.
func (s *ImageState) ConvertToRGB() error {
	if !s.converted {
		return ErrNotYCbCr
	}
	cb, cr := s.cb, s.cr
	if s.sampled {
		rows, cols := s.y.Dims()
		cb = upSamplePlane(cb, s.sampling, rows, cols)
		cr = upSamplePlane(cr, s.sampling, rows, cols)
	}
	s.r, s.g, s.b = ycbcrToRGB(s.y, cb, cr)
	return nil
}

// DownSample decimates the chroma planes with the given pattern.
func (s *ImageState) DownSample(mode SamplingMode) error {
	if !s.converted {
		return ErrNotYCbCr
	}
	s.cb = downSamplePlane(s.cb, mode)
	s.cr = downSamplePlane(s.cr, mode)
	s.sampling = mode
	s.sampled = true
	return nil
}

// UpSample replicates the chroma planes back to the luma dimensions using
// the pattern recorded by DownSample.
func (s *ImageState) UpSample() error {
	if !s.converted {
		return ErrNotYCbCr
	}
	if !s.sampled {
		return ErrNotSampled
	}
	rows, cols := s.y.Dims()
	s.cb = upSamplePlane(s.cb, s.sampling, rows, cols)
	s.cr = upSamplePlane(s.cr, s.sampling, rows, cols)
	s.sampled = false
	return nil
}

// Transform applies the forward block transform to all three planes.
func (s *ImageState) Transform(kind TransformKind, blockSize int) error {
	if !s.converted {
		return ErrNotYCbCr
	}
	y, err := forwardTransformPlane(s.y, kind, blockSize)
	if err != nil {
		return err
	}
	cb, err := forwardTransformPlane(s.cb, kind, blockSize)
	if err != nil {
		return err
	}
	cr, err := forwardTransformPlane(s.cr, kind, blockSize)
	if err != nil {
		return err
	}
	s.y, s.cb, s.cr = y, cb, cr
	s.transKind = kind
	s.transSize = blockSize
	s.transSet = true
	return nil
}

// InverseTransform undoes Transform using the recorded kind and block size.
func (s *ImageState) InverseTransform() error {
	if !s.converted {
		return ErrNotYCbCr
	}
	if !s.transSet {
		return ErrNotTransformed
	}
	y, err := inverseTransformPlane(s.y, s.transKind, s.transSize)
	if err != nil {
		return err
	}
	cb, err := inverseTransformPlane(s.cb, s.transKind, s.transSize)
	if err != nil {
		return err
	}
	cr, err := inverseTransformPlane(s.cr, s.transKind, s.transSize)
	if err != nil {
		return err
	}
	s.y, s.cb, s.cr = y, cb, cr
	s.transSet = false
	return nil
}

// Quantize divides all three planes by quality-scaled quantization
// matrices, the luma table for Y and the chroma table for Cb/Cr, and
// records the parameters for InverseQuantize.
func (s *ImageState) Quantize(blockSize, quality int) error {
	if !s.converted {
		return ErrNotYCbCr
	}
	y, err := quantizePlane(s.y, blockSize, quality, true)
	if err != nil {
		return err
	}
	cb, err := quantizePlane(s.cb, blockSize, quality, false)
	if err != nil {
		return err
	}
	cr, err := quantizePlane(s.cr, blockSize, quality, false)
	if err != nil {
		return err
	}
	s.y, s.cb, s.cr = y, cb, cr
	s.quantBlock = blockSize
	s.quantQuality = quality
	s.quantized = true
	return nil
}

// InverseQuantize multiplies the planes back by the same matrices the
// matching Quantize call divided by.
func (s *ImageState) InverseQuantize() error {
	if !s.converted {
		return ErrNotYCbCr
	}
	if !s.quantized {
		return ErrNotQuantized
	}
	y, err := dequantizePlane(s.y, s.quantBlock, s.quantQuality, true)
	if err != nil {
		return err
	}
	cb, err := dequantizePlane(s.cb, s.quantBlock, s.quantQuality, false)
	if err != nil {
		return err
	}
	cr, err := dequantizePlane(s.cr, s.quantBlock, s.quantQuality, false)
	if err != nil {
		return err
	}
	s.y, s.cb, s.cr = y, cb, cr
	s.quantized = false
	return nil
}

// Plane returns a copy of one YCbCr plane.
func (s *ImageState) Plane(c Component) (*mat.Dense, error) {
	if !s.converted {
		return nil, ErrNotYCbCr
	}
	switch c {
	case ComponentY:
		return clonePlane(s.y), nil
	case ComponentCb:
		return clonePlane(s.cb), nil
	default:
		return clonePlane(s.cr), nil
	}
}

// SetPlane replaces one YCbCr plane. The replacement must match the
// current plane's dimensions.
func (s *ImageState) SetPlane(c Component, m *mat.Dense) error {
	if !s.converted {
		return ErrNotYCbCr
	}
	cur, _ := s.Plane(c)
	if !sameDims(cur, m) {
		return ErrDimensionMismatch
	}
	switch c {
	case ComponentY:
		s.y = clonePlane(m)
	case ComponentCb:
		s.cb = clonePlane(m)
	default:
		s.cr = clonePlane(m)
	}
	return nil
}

// RGBPlanes returns copies of the current RGB planes.
func (s *ImageState) RGBPlanes() (r, g, b [][]int) {
	return clonePlaneInts(s.r), clonePlaneInts(s.g), clonePlaneInts(s.b)
}

// Image rasterizes the current RGB planes.
func (s *ImageState) Image() *image.RGBA {
	w, h := s.Width(), s.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(s.r[y][x]),
				G: uint8(s.g[y][x]),
				B: uint8(s.b[y][x]),
				A: 255,
			})
		}
	}
	return img
}
