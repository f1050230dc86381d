package pipeline

import (
	"math"

	"github.com/gradientlab/darkroom/internal/bitmap"
)

// Rec. 601 luma weights used for the saturation blend.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Adjust applies the photometric adjustments to src and returns a new bitmap
// of identical dimensions. The source is never modified and the alpha channel
// passes through unchanged. Application order is fixed: brightness, contrast,
// saturation, blur.
func Adjust(src *bitmap.Bitmap, a Adjustments, opts *Options) (*bitmap.Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	o := resolveOptions(opts)
	out := src.Clone()

	if a.Brightness != PercentIdentity {
		scaleChannels(out, float64(a.Brightness)/100, o.Workers, func(v, factor float64) float64 {
			return v * factor
		})
	}
	if a.Contrast != PercentIdentity {
		scaleChannels(out, float64(a.Contrast)/100, o.Workers, func(v, factor float64) float64 {
			return 128 + (v-128)*factor
		})
	}
	if a.Saturation != PercentIdentity {
		applySaturation(out, float64(a.Saturation)/100, o.Workers)
	}
	if a.Blur > 0 {
		out = boxBlur(out, a.Blur, o.Workers)
	}

	return out, nil
}

// scaleChannels remaps each color channel in place with fn, leaving alpha
// alone. The bitmap is an owned copy at this point, so in-place is safe.
func scaleChannels(b *bitmap.Bitmap, factor float64, workers int, fn func(v, factor float64) float64) {
	parallelize(workers, 0, b.Height, func(start, stop int) {
		for y := start; y < stop; y++ {
			row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
			for x := 0; x < b.Width; x++ {
				off := x * 4
				row[off] = clampU8(fn(float64(row[off]), factor))
				row[off+1] = clampU8(fn(float64(row[off+1]), factor))
				row[off+2] = clampU8(fn(float64(row[off+2]), factor))
			}
		}
	})
}

// applySaturation blends each channel toward the pixel's luminance. Factor 0
// desaturates fully, 1 is identity, values above 1 extrapolate away from gray.
func applySaturation(b *bitmap.Bitmap, factor float64, workers int) {
	parallelize(workers, 0, b.Height, func(start, stop int) {
		for y := start; y < stop; y++ {
			row := b.Pix[y*b.Width*4 : (y+1)*b.Width*4]
			for x := 0; x < b.Width; x++ {
				off := x * 4
				r := float64(row[off])
				g := float64(row[off+1])
				bl := float64(row[off+2])
				luma := lumaR*r + lumaG*g + lumaB*bl
				row[off] = clampU8(luma + (r-luma)*factor)
				row[off+1] = clampU8(luma + (g-luma)*factor)
				row[off+2] = clampU8(luma + (bl-luma)*factor)
			}
		}
	})
}

// boxBlur runs a separable box blur with repeat-edge sampling. Only the color
// channels are averaged; alpha is carried over from the source pixel.
func boxBlur(src *bitmap.Bitmap, radius, workers int) *bitmap.Bitmap {
	w, h := src.Width, src.Height
	window := float64(2*radius + 1)

	tmp := &bitmap.Bitmap{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	parallelize(workers, 0, h, func(start, stop int) {
		for y := start; y < stop; y++ {
			for x := 0; x < w; x++ {
				var sumR, sumG, sumB int
				for dx := -radius; dx <= radius; dx++ {
					off := src.PixOffset(clampIndex(x+dx, w), y)
					sumR += int(src.Pix[off])
					sumG += int(src.Pix[off+1])
					sumB += int(src.Pix[off+2])
				}
				off := tmp.PixOffset(x, y)
				tmp.Pix[off] = clampU8(float64(sumR) / window)
				tmp.Pix[off+1] = clampU8(float64(sumG) / window)
				tmp.Pix[off+2] = clampU8(float64(sumB) / window)
				tmp.Pix[off+3] = src.Pix[off+3]
			}
		}
	})

	out := &bitmap.Bitmap{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	parallelize(workers, 0, h, func(start, stop int) {
		for y := start; y < stop; y++ {
			for x := 0; x < w; x++ {
				var sumR, sumG, sumB int
				for dy := -radius; dy <= radius; dy++ {
					off := tmp.PixOffset(x, clampIndex(y+dy, h))
					sumR += int(tmp.Pix[off])
					sumG += int(tmp.Pix[off+1])
					sumB += int(tmp.Pix[off+2])
				}
				off := out.PixOffset(x, y)
				out.Pix[off] = clampU8(float64(sumR) / window)
				out.Pix[off+1] = clampU8(float64(sumG) / window)
				out.Pix[off+2] = clampU8(float64(sumB) / window)
				out.Pix[off+3] = tmp.Pix[off+3]
			}
		}
	})

	return out
}

func clampU8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampIndex keeps a sample coordinate inside [0, size). Edge pixels repeat
// rather than wrap, which avoids discontinuity artifacts at the borders.
func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
