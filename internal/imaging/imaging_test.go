package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestToWebP_ResizesAndRoundTrips(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 200, 100), 50, 80)
	if err != nil {
		t.Fatalf("to webp: %v", err)
	}
	if !isWebP(out) {
		t.Fatalf("output is not a webp container")
	}

	img, err := Decode(out)
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Fatalf("size = %dx%d, want 50x25", b.Dx(), b.Dy())
	}
}

func TestFit_KeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if Fit(img, 512) != image.Image(img) {
		t.Fatalf("small image should be returned as is")
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}
