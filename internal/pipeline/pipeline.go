// Package pipeline implements the deterministic image edit core: photometric
// adjustments (brightness, contrast, saturation, blur) followed by geometric
// reorientation (quarter-turn rotation and flips). Every run is a pure
// function from (source bitmap, parameter snapshot) to a new output bitmap;
// identical inputs always produce byte-identical output.
package pipeline

import (
	"context"

	"github.com/gradientlab/darkroom/internal/bitmap"
)

// Run evaluates one full pipeline pass: the photometric adjustments, then
// the geometric reorientation, always starting from the pristine source
// bitmap.
// Parameters are validated up front so an invalid run fails before any pixel
// work and never surfaces a partial bitmap.
func Run(ctx context.Context, src *bitmap.Bitmap, a Adjustments, o Orientation, opts *Options) (*bitmap.Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	adjusted, err := Adjust(src, a, opts)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return Reorient(adjusted, o)
}
