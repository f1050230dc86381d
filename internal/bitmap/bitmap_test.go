package bitmap

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewRejectsEmptyDimensions(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, ErrEmptyBitmap) {
		t.Fatalf("expected ErrEmptyBitmap for zero width, got %v", err)
	}
	if _, err := New(10, 0); !errors.Is(err, ErrEmptyBitmap) {
		t.Fatalf("expected ErrEmptyBitmap for zero height, got %v", err)
	}
}

func TestFromPixChecksBufferLength(t *testing.T) {
	if _, err := FromPix(2, 2, make([]uint8, 15)); !errors.Is(err, ErrMalformedBitmap) {
		t.Fatalf("expected ErrMalformedBitmap, got %v", err)
	}

	b, err := FromPix(2, 2, make([]uint8, 16))
	if err != nil {
		t.Fatalf("expected valid bitmap, got %v", err)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := New(3, 2)
	if err != nil {
		t.Fatalf("new bitmap: %v", err)
	}
	b.Pix[0] = 42

	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("clone should equal original")
	}

	c.Pix[0] = 99
	if b.Pix[0] != 42 {
		t.Fatal("mutating clone must not touch original buffer")
	}
}

func TestFromImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 80), B: 20, A: 255})
		}
	}

	b, err := FromImage(img)
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	if b.Width != 4 || b.Height != 3 {
		t.Fatalf("expected 4x3, got %dx%d", b.Width, b.Height)
	}

	back := b.ToNRGBA()
	for i := range img.Pix {
		if img.Pix[i] != back.Pix[i] {
			t.Fatalf("pixel byte %d differs: %d vs %d", i, img.Pix[i], back.Pix[i])
		}
	}
}

func TestFromImageNonZeroOrigin(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	base.SetNRGBA(5, 5, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	sub, ok := base.SubImage(image.Rect(5, 5, 8, 8)).(*image.NRGBA)
	if !ok {
		t.Fatal("expected NRGBA subimage")
	}

	b, err := FromImage(sub)
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	if b.Width != 3 || b.Height != 3 {
		t.Fatalf("expected 3x3, got %dx%d", b.Width, b.Height)
	}
	if off := b.PixOffset(0, 0); b.Pix[off] != 200 {
		t.Fatalf("expected translated origin pixel R=200, got %d", b.Pix[off])
	}
}
