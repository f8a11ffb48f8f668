package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkowalski/watermarklab"
)

// loadImage decodes a PNG or JPEG file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// saveImage encodes an image by the output path's extension, PNG unless the
// extension says JPEG.
func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	default:
		return png.Encode(f, img)
	}
}

// parseEmbedParams assembles method parameters from the shared flag set.
func parseEmbedParams(method string, bitPlane, blockSize int, strength float64, key string) (watermarklab.EmbedParams, error) {
	permute := key != ""
	switch strings.ToLower(method) {
	case "lsb":
		return watermarklab.LSBParams{BitPlane: bitPlane, Permute: permute, Key: key}, nil
	case "dct":
		return watermarklab.DCTParams{
			BlockSize: blockSize,
			Coef1:     [2]int{3, 1},
			Coef2:     [2]int{4, 1},
			Strength:  strength,
			Permute:   permute,
			Key:       key,
		}, nil
	default:
		return nil, fmt.Errorf("unknown method %q (want lsb or dct)", method)
	}
}
