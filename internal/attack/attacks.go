package attack

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/exp/rand"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/stat/distuv"
)

func init() {
	Register(jpegAttack{})
	Register(pngAttack{})
	Register(rotateAttack{})
	Register(resizeAttack{})
	Register(mirrorAttack{})
	Register(cropAttack{})
	Register(noiseAttack{})
}

// jpegAttack re-encodes the image through the JPEG codec at a given
// quality, introducing block-transform quantization loss.
type jpegAttack struct{}

func (jpegAttack) Name() string { return "jpeg" }

func (jpegAttack) Ranges() map[string]Range {
	return map[string]Range{
		"quality": {Default: 75, Min: 1, Max: 100},
	}
}

func (a jpegAttack) Apply(img image.Image, p Params) (image.Image, error) {
	p, err := resolve(a, p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: int(p["quality"])}); err != nil {
		return nil, fmt.Errorf("jpeg attack encode: %w", err)
	}
	out, err := jpeg.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("jpeg attack decode: %w", err)
	}
	return toRGBA(out), nil
}

// pngAttack re-encodes the image through the PNG codec. PNG is lossless,
// so the attack only exercises the codec round trip and color model
// normalization at the selected compression level.
type pngAttack struct{}

func (pngAttack) Name() string { return "png" }

func (pngAttack) Ranges() map[string]Range {
	// 0 default, 1 none, 2 fastest, 3 best.
	return map[string]Range{
		"level": {Default: 0, Min: 0, Max: 3},
	}
}

func (a pngAttack) Apply(img image.Image, p Params) (image.Image, error) {
	p, err := resolve(a, p)
	if err != nil {
		return nil, err
	}
	levels := []png.CompressionLevel{
		png.DefaultCompression,
		png.NoCompression,
		png.BestSpeed,
		png.BestCompression,
	}
	enc := png.Encoder{CompressionLevel: levels[int(p["level"])]}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png attack encode: %w", err)
	}
	out, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("png attack decode: %w", err)
	}
	return toRGBA(out), nil
}

// rotateAttack rotates the image. Multiples of 90 degrees use exact sample
// shuffles; other angles rotate about the center with bilinear resampling
// and recrop to the original bounds, losing the corners. A 90 or 270
// degree rotation of a non-square image is scaled back onto the original
// bounds so the output dimensions stay fixed.
type rotateAttack struct{}

func (rotateAttack) Name() string { return "rotate" }

func (rotateAttack) Ranges() map[string]Range {
	return map[string]Range{
		"angle": {Default: 45, Min: -360, Max: 360},
	}
}

func (a rotateAttack) Apply(img image.Image, p Params) (image.Image, error) {
	p, err := resolve(a, p)
	if err != nil {
		return nil, err
	}
	angle := math.Mod(p["angle"]+360, 360)
	src := toRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch angle {
	case 0:
		return src, nil
	case 180:
		out := image.NewRGBA(b)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(x, y, src.At(b.Min.X+w-1-x, b.Min.Y+h-1-y))
			}
		}
		return out, nil
	case 90, 270:
		turned := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if angle == 90 {
					turned.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
				} else {
					turned.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
				}
			}
		}
		if w == h {
			return turned, nil
		}
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(out, out.Bounds(), turned, turned.Bounds(), draw.Src, nil)
		return out, nil
	}

	rad := angle * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	cx := float64(w) / 2
	cy := float64(h) / 2
	// Affine map from source to destination space, rotating about the
	// image center so the recrop keeps the middle of the frame.
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Transform(out, m, src, src.Bounds(), draw.Src, nil)
	return out, nil
}

// resizeAttack scales the image down by a factor and back up to the
// original size. Resampling loss shows up even at factor 1.
type resizeAttack struct{}

func (resizeAttack) Name() string { return "resize" }

func (resizeAttack) Ranges() map[string]Range {
	return map[string]Range{
		"scale": {Default: 0.5, Min: 0.05, Max: 1},
	}
}

func (a resizeAttack) Apply(img image.Image, p Params) (image.Image, error) {
	p, err := resolve(a, p)
	if err != nil {
		return nil, err
	}
	src := toRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	sw := int(math.Max(1, math.Round(float64(w)*p["scale"])))
	sh := int(math.Max(1, math.Round(float64(h)*p["scale"])))

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.CatmullRom.Scale(small, small.Bounds(), src, b, draw.Src, nil)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	return out, nil
}

// mirrorAttack flips the image horizontally. Lossless.
type mirrorAttack struct{}

func (mirrorAttack) Name() string { return "mirror" }

func (mirrorAttack) Ranges() map[string]Range { return map[string]Range{} }

func (a mirrorAttack) Apply(img image.Image, p Params) (image.Image, error) {
	if _, err := resolve(a, p); err != nil {
		return nil, err
	}
	src := toRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out, nil
}

// cropAttack removes a border fraction on every side and stretches the
// remaining center back to the original dimensions.
type cropAttack struct{}

func (cropAttack) Name() string { return "crop" }

func (cropAttack) Ranges() map[string]Range {
	return map[string]Range{
		"fraction": {Default: 0.1, Min: 0, Max: 0.45},
	}
}

func (a cropAttack) Apply(img image.Image, p Params) (image.Image, error) {
	p, err := resolve(a, p)
	if err != nil {
		return nil, err
	}
	src := toRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dx := int(float64(w) * p["fraction"])
	dy := int(float64(h) * p["fraction"])
	inner := image.Rect(b.Min.X+dx, b.Min.Y+dy, b.Max.X-dx, b.Max.Y-dy)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), src, inner, draw.Src, nil)
	return out, nil
}

// noiseAttack adds independent Gaussian noise N(0, sigma) to every channel
// of every pixel, clamped to [0,255]. The seed parameter makes runs
// reproducible.
type noiseAttack struct{}

func (noiseAttack) Name() string { return "noise" }

func (noiseAttack) Ranges() map[string]Range {
	return map[string]Range{
		"sigma": {Default: 10, Min: 0, Max: 128},
		"seed":  {Default: 1, Min: 0, Max: math.MaxUint32},
	}
}

func (a noiseAttack) Apply(img image.Image, p Params) (image.Image, error) {
	p, err := resolve(a, p)
	if err != nil {
		return nil, err
	}
	src := toRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dist := distuv.Normal{
		Mu:    0,
		Sigma: p["sigma"],
		Src:   rand.NewSource(uint64(p["seed"])),
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			o := out.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				out.Pix[o+c] = clampByte(float64(src.Pix[i+c]) + dist.Rand())
			}
			out.Pix[o+3] = 255
		}
	}
	return out, nil
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// toRGBA normalizes any image to RGBA with a zero-based origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
