// Watermark model: binary bitmaps with optional keyed permutation.
package watermarklab

import (
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"

	"github.com/nkowalski/watermarklab/internal/keyperm"
)

// Watermark is a binary bitmap. When the bitmap has been permuted, Key
// records the permutation key so it can be undone.
type Watermark struct {
	Bits [][]bool
	Key  string
}

// NewWatermark builds an all-zero watermark of the given dimensions.
func NewWatermark(width, height int) *Watermark {
	bits := make([][]bool, height)
	for r := range bits {
		bits[r] = make([]bool, width)
	}
	return &Watermark{Bits: bits}
}

// WatermarkFromImage binarizes an image into a watermark: a pixel is set
// iff its BT.601 luminance 0.299R+0.587G+0.114B exceeds 128.
func WatermarkFromImage(img image.Image) *Watermark {
	bounds := img.Bounds()
	w := NewWatermark(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			w.Bits[y-bounds.Min.Y][x-bounds.Min.X] = lum > 128
		}
	}
	return w
}

// WatermarkFromText renders content as a QR code of the given pixel size
// and binarizes it, so arbitrary text can ride as an image watermark.
func WatermarkFromText(content string, size int) (*Watermark, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("building QR watermark: %w", err)
	}
	return WatermarkFromImage(code.Image(size)), nil
}

// Width returns the watermark width in pixels.
func (w *Watermark) Width() int {
	if len(w.Bits) == 0 {
		return 0
	}
	return len(w.Bits[0])
}

// Height returns the watermark height in pixels.
func (w *Watermark) Height() int {
	return len(w.Bits)
}

// Image renders the watermark as a grayscale image, white for set bits.
func (w *Watermark) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w.Width(), w.Height()))
	for y, row := range w.Bits {
		for x, bit := range row {
			if bit {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// Permute returns the watermark scrambled by the keyed permutation of its
// flattened bit positions. The result carries the key.
func (w *Watermark) Permute(key string) *Watermark {
	out := w.reshape(keyperm.Scatter(w.flatten(), key))
	out.Key = key
	return out
}

// Unpermute undoes Permute with the same key.
func (w *Watermark) Unpermute(key string) *Watermark {
	return w.reshape(keyperm.Gather(w.flatten(), key))
}

func (w *Watermark) flatten() []bool {
	flat := make([]bool, 0, w.Width()*w.Height())
	for _, row := range w.Bits {
		flat = append(flat, row...)
	}
	return flat
}

func (w *Watermark) reshape(flat []bool) *Watermark {
	out := NewWatermark(w.Width(), w.Height())
	if w.Width() == 0 {
		return out
	}
	for i, v := range flat {
		out.Bits[i/w.Width()][i%w.Width()] = v
	}
	return out
}
