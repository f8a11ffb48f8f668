package watermarklab

import "errors"

var (
	// ErrNotYCbCr is returned when a pipeline operation that works on
	// Y/Cb/Cr planes is invoked before ConvertToYCbCr.
	ErrNotYCbCr = errors.New("image not converted to YCbCr")

	// ErrNotSampled is returned when UpSample is invoked without a
	// matching prior DownSample.
	ErrNotSampled = errors.New("image not downsampled")

	// ErrNotQuantized is returned when InverseQuantize is invoked without
	// a matching prior Quantize.
	ErrNotQuantized = errors.New("image not quantized")

	// ErrNotTransformed is returned when InverseTransform is invoked
	// without a matching prior Transform.
	ErrNotTransformed = errors.New("image not transformed")

	// ErrInvalidBlockSize is returned for block sizes a transform or
	// quantizer cannot use (WHT and Haar need a power of two, the
	// quantizer a positive multiple of 8).
	ErrInvalidBlockSize = errors.New("invalid block size")

	// ErrInvalidQuality is returned when a quality factor is outside 1-100.
	ErrInvalidQuality = errors.New("invalid quality (must be 1-100)")

	// ErrInvalidBitPlane is returned when an LSB bit plane is outside 0-7.
	ErrInvalidBitPlane = errors.New("invalid bit plane (must be 0-7)")

	// ErrUnsupportedTransform is returned for unknown transform kinds.
	ErrUnsupportedTransform = errors.New("unsupported transform type")

	// ErrWatermarkTooLarge is returned when a watermark does not fit the
	// host plane (or, for DCT embedding, its block grid).
	ErrWatermarkTooLarge = errors.New("watermark exceeds host capacity")

	// ErrDimensionMismatch is returned when two planes or watermarks of
	// different sizes are compared.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidCoefficient is returned when a DCT coefficient position
	// lies outside the block.
	ErrInvalidCoefficient = errors.New("coefficient position outside block")
)
