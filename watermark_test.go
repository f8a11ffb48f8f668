package watermarklab

import (
	"image"
	"image/color"
	"testing"
)

func TestWatermarkFromImage_LuminanceThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // lum 255
	img.Set(1, 0, color.RGBA{R: 255, A: 255})                 // lum 76.2
	img.Set(2, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255}) // lum 128, not above
	wm := WatermarkFromImage(img)
	want := []bool{true, false, false}
	for x, w := range want {
		if wm.Bits[0][x] != w {
			t.Errorf("pixel %d: got %t, want %t", x, wm.Bits[0][x], w)
		}
	}
}

func TestWatermark_PermuteRoundtrip(t *testing.T) {
	wm := NewWatermark(16, 12)
	for r := range wm.Bits {
		for c := range wm.Bits[r] {
			wm.Bits[r][c] = (r*5+c*3)%4 == 0
		}
	}
	perm := wm.Permute("secret")
	if perm.Key != "secret" {
		t.Errorf("permuted watermark must carry the key, got %q", perm.Key)
	}
	back := perm.Unpermute("secret")
	for r := range wm.Bits {
		for c := range wm.Bits[r] {
			if back.Bits[r][c] != wm.Bits[r][c] {
				t.Fatalf("(%d,%d) not restored", r, c)
			}
		}
	}
}

func TestWatermark_PermuteZeroWidth(t *testing.T) {
	wm := NewWatermark(0, 3)
	perm := wm.Permute("secret")
	if perm.Width() != 0 || perm.Height() != 3 {
		t.Errorf("got %dx%d, want 0x3", perm.Width(), perm.Height())
	}
	back := perm.Unpermute("secret")
	if back.Width() != 0 || back.Height() != 3 {
		t.Errorf("unpermuted: got %dx%d, want 0x3", back.Width(), back.Height())
	}
}

func TestWatermark_PermuteScrambles(t *testing.T) {
	wm := NewWatermark(16, 16)
	for c := 0; c < 16; c++ {
		wm.Bits[0][c] = true
	}
	perm := wm.Permute("secret")
	moved := false
	for c := 0; c < 16; c++ {
		if !perm.Bits[0][c] {
			moved = true
		}
	}
	if !moved {
		t.Error("permutation left the first row intact")
	}
}

func TestWatermarkFromText_QRCode(t *testing.T) {
	wm, err := WatermarkFromText("https://example.com/wm", 64)
	if err != nil {
		t.Fatalf("WatermarkFromText: %v", err)
	}
	if wm.Width() != 64 || wm.Height() != 64 {
		t.Fatalf("got %dx%d, want 64x64", wm.Width(), wm.Height())
	}
	set := 0
	for _, row := range wm.Bits {
		for _, bit := range row {
			if bit {
				set++
			}
		}
	}
	if set == 0 || set == 64*64 {
		t.Errorf("QR watermark is uniform (%d set bits)", set)
	}
}

func TestWatermark_Image(t *testing.T) {
	wm := NewWatermark(2, 2)
	wm.Bits[0][1] = true
	img := wm.Image()
	if img.GrayAt(1, 0).Y != 255 {
		t.Error("set bit must render white")
	}
	if img.GrayAt(0, 0).Y != 0 {
		t.Error("clear bit must render black")
	}
}
