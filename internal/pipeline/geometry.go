package pipeline

import (
	"github.com/gradientlab/darkroom/internal/bitmap"
)

// Reorient repositions pixels according to the orientation and returns a new
// bitmap. Color values are never altered: every rotation and flip is an exact
// pixel permutation, so no interpolation loss accumulates. Rotation applies
// first, then the horizontal flip, then the vertical flip.
func Reorient(src *bitmap.Bitmap, o Orientation) (*bitmap.Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	out := rotateQuarter(src, o.RotationDegrees/90)
	if o.FlipHorizontal {
		out = flipHorizontal(out)
	}
	if o.FlipVertical {
		out = flipVertical(out)
	}
	return out, nil
}

// rotateQuarter rotates by k clockwise quarter turns, k in {0,1,2,3}.
func rotateQuarter(src *bitmap.Bitmap, k int) *bitmap.Bitmap {
	switch k {
	case 1:
		return rotate90(src)
	case 2:
		return rotate180(src)
	case 3:
		return rotate270(src)
	default:
		return src.Clone()
	}
}

func rotate90(src *bitmap.Bitmap) *bitmap.Bitmap {
	w, h := src.Width, src.Height
	out := &bitmap.Bitmap{Width: h, Height: w, Pix: make([]uint8, len(src.Pix))}
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			// output(x, y) = input(y, height-1-x)
			srcOff := src.PixOffset(y, h-1-x)
			dstOff := out.PixOffset(x, y)
			copy(out.Pix[dstOff:dstOff+4], src.Pix[srcOff:srcOff+4])
		}
	}
	return out
}

func rotate180(src *bitmap.Bitmap) *bitmap.Bitmap {
	w, h := src.Width, src.Height
	out := &bitmap.Bitmap{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcOff := src.PixOffset(w-1-x, h-1-y)
			dstOff := out.PixOffset(x, y)
			copy(out.Pix[dstOff:dstOff+4], src.Pix[srcOff:srcOff+4])
		}
	}
	return out
}

func rotate270(src *bitmap.Bitmap) *bitmap.Bitmap {
	w, h := src.Width, src.Height
	out := &bitmap.Bitmap{Width: h, Height: w, Pix: make([]uint8, len(src.Pix))}
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			// output(x, y) = input(width-1-y, x)
			srcOff := src.PixOffset(w-1-y, x)
			dstOff := out.PixOffset(x, y)
			copy(out.Pix[dstOff:dstOff+4], src.Pix[srcOff:srcOff+4])
		}
	}
	return out
}

func flipHorizontal(src *bitmap.Bitmap) *bitmap.Bitmap {
	w, h := src.Width, src.Height
	out := &bitmap.Bitmap{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcOff := src.PixOffset(w-1-x, y)
			dstOff := out.PixOffset(x, y)
			copy(out.Pix[dstOff:dstOff+4], src.Pix[srcOff:srcOff+4])
		}
	}
	return out
}

func flipVertical(src *bitmap.Bitmap) *bitmap.Bitmap {
	w, h := src.Width, src.Height
	out := &bitmap.Bitmap{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(0, h-1-y)
		dstOff := out.PixOffset(0, y)
		copy(out.Pix[dstOff:dstOff+w*4], src.Pix[srcOff:srcOff+w*4])
	}
	return out
}
