// Package bitmap holds the in-memory pixel representation shared by the
// edit pipeline. A Bitmap is a plain RGBA buffer: four bytes per pixel,
// row-major, no padding.
package bitmap

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrEmptyBitmap     = errors.New("bitmap has zero width or height")
	ErrMalformedBitmap = errors.New("bitmap buffer does not match dimensions")
)

type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed bitmap of the given dimensions.
func New(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyBitmap, width, height)
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// FromPix wraps an existing RGBA buffer. The buffer length must equal
// width*height*4; ownership transfers to the returned bitmap.
func FromPix(width, height int, pix []uint8) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyBitmap, width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedBitmap, width*height*4, len(pix))
	}
	return &Bitmap{Width: width, Height: height, Pix: pix}, nil
}

// FromImage copies an image into a fresh bitmap. Pixels are stored
// non-premultiplied so photometric math operates on raw channel values.
func FromImage(src image.Image) (*Bitmap, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyBitmap, w, h)
	}

	nrgba, ok := src.(*image.NRGBA)
	if !ok || !bounds.Min.Eq(image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				nrgba.Set(x, y, src.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	}

	pix := make([]uint8, w*h*4)
	if nrgba.Stride == w*4 {
		copy(pix, nrgba.Pix[:w*h*4])
	} else {
		for y := 0; y < h; y++ {
			copy(pix[y*w*4:(y+1)*w*4], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+w*4])
		}
	}
	return &Bitmap{Width: w, Height: h, Pix: pix}, nil
}

// Validate checks the buffer invariant. Stages call this before touching
// pixels so a malformed bitmap fails fast instead of corrupting output.
func (b *Bitmap) Validate() error {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return ErrEmptyBitmap
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedBitmap, b.Width*b.Height*4, len(b.Pix))
	}
	return nil
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return (y*b.Width + x) * 4
}

// Clone returns an independent copy sharing no buffer with the receiver.
func (b *Bitmap) Clone() *Bitmap {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: pix}
}

// Equal reports whether two bitmaps have identical dimensions and bytes.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Width != other.Width || b.Height != other.Height || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ToNRGBA copies the bitmap into a stdlib image for encoding.
func (b *Bitmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}
