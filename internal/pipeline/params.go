package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks an adjustment or orientation value outside its
// defined domain. Callers are expected to clamp before invoking the pipeline;
// the stages still reject out-of-range input so upstream bugs surface instead
// of silently producing a different image.
var ErrInvalidParameter = errors.New("invalid pipeline parameter")

const (
	// PercentIdentity is the neutral setting for percentage adjustments.
	PercentIdentity = 100

	MinPercent = 0
	MaxPercent = 200

	MinBlurRadius = 0
	MaxBlurRadius = 20
)

// Adjustments is the photometric parameter snapshot for one pipeline run.
// Brightness, contrast and saturation are percentages where 100 is identity;
// blur is a box radius in pixels where 0 is identity.
type Adjustments struct {
	Brightness int `json:"brightness"`
	Contrast   int `json:"contrast"`
	Saturation int `json:"saturation"`
	Blur       int `json:"blur"`
}

// DefaultAdjustments returns the identity settings.
func DefaultAdjustments() Adjustments {
	return Adjustments{
		Brightness: PercentIdentity,
		Contrast:   PercentIdentity,
		Saturation: PercentIdentity,
		Blur:       0,
	}
}

func (a Adjustments) Validate() error {
	if err := validatePercent("brightness", a.Brightness); err != nil {
		return err
	}
	if err := validatePercent("contrast", a.Contrast); err != nil {
		return err
	}
	if err := validatePercent("saturation", a.Saturation); err != nil {
		return err
	}
	if a.Blur < MinBlurRadius || a.Blur > MaxBlurRadius {
		return fmt.Errorf("%w: blur must be in [%d,%d], got %d", ErrInvalidParameter, MinBlurRadius, MaxBlurRadius, a.Blur)
	}
	return nil
}

// IsIdentity reports whether applying the adjustments would leave every
// pixel unchanged.
func (a Adjustments) IsIdentity() bool {
	return a.Brightness == PercentIdentity &&
		a.Contrast == PercentIdentity &&
		a.Saturation == PercentIdentity &&
		a.Blur == 0
}

func validatePercent(name string, value int) error {
	if value < MinPercent || value > MaxPercent {
		return fmt.Errorf("%w: %s must be in [%d,%d], got %d", ErrInvalidParameter, name, MinPercent, MaxPercent, value)
	}
	return nil
}

// Orientation is the geometric parameter snapshot: a quarter-turn rotation
// plus independent flips. Rotation applies first, then the horizontal flip,
// then the vertical flip, so flips read relative to the rotated frame.
type Orientation struct {
	RotationDegrees int  `json:"rotation_degrees"`
	FlipHorizontal  bool `json:"flip_horizontal"`
	FlipVertical    bool `json:"flip_vertical"`
}

func (o Orientation) Validate() error {
	switch o.RotationDegrees {
	case 0, 90, 180, 270:
		return nil
	default:
		return fmt.Errorf("%w: rotation must be one of 0, 90, 180, 270, got %d", ErrInvalidParameter, o.RotationDegrees)
	}
}

// Rotated returns the orientation advanced by one clockwise quarter turn.
func (o Orientation) Rotated() Orientation {
	o.RotationDegrees = (o.RotationDegrees + 90) % 360
	return o
}

// IsIdentity reports whether the orientation leaves pixels where they are.
func (o Orientation) IsIdentity() bool {
	return o.RotationDegrees == 0 && !o.FlipHorizontal && !o.FlipVertical
}

// SwapsDimensions reports whether the rotation exchanges width and height.
func (o Orientation) SwapsDimensions() bool {
	return o.RotationDegrees == 90 || o.RotationDegrees == 270
}
