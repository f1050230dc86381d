package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/gradientlab/darkroom/internal/bitmap"
)

func TestRunIdentityAtDefaults(t *testing.T) {
	src := buildTestBitmap(t, 20, 14)

	out, err := Run(context.Background(), src, DefaultAdjustments(), Orientation{}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Equal(src) {
		t.Fatal("default parameters must reproduce the source exactly")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	src := buildTestBitmap(t, 33, 21)
	a := Adjustments{Brightness: 120, Contrast: 90, Saturation: 60, Blur: 2}
	o := Orientation{RotationDegrees: 270, FlipVertical: true}

	first, err := Run(context.Background(), src, a, o, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Run(context.Background(), src, a, o, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !first.Equal(second) {
		t.Fatal("identical inputs must produce byte-identical outputs")
	}
}

func TestRunLeavesSourceUntouched(t *testing.T) {
	src := buildTestBitmap(t, 10, 10)
	before := src.Clone()

	if _, err := Run(context.Background(), src, Adjustments{Brightness: 40, Contrast: 160, Saturation: 0, Blur: 5}, Orientation{RotationDegrees: 90}, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !src.Equal(before) {
		t.Fatal("pipeline run must not mutate the source bitmap")
	}
}

func TestRunComposesStages(t *testing.T) {
	src := buildTestBitmap(t, 15, 9)
	a := Adjustments{Brightness: 150, Contrast: 100, Saturation: 100, Blur: 1}
	o := Orientation{RotationDegrees: 180, FlipHorizontal: true}

	composed, err := Run(context.Background(), src, a, o, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	adjusted, err := Adjust(src, a, nil)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	manual, err := Reorient(adjusted, o)
	if err != nil {
		t.Fatalf("reorient: %v", err)
	}

	if !composed.Equal(manual) {
		t.Fatal("Run must equal Adjust followed by Reorient")
	}
}

func TestRunValidatesBeforeWork(t *testing.T) {
	src := buildTestBitmap(t, 4, 4)

	if _, err := Run(context.Background(), src, Adjustments{Brightness: 999, Contrast: 100, Saturation: 100}, Orientation{}, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for adjustments, got %v", err)
	}
	if _, err := Run(context.Background(), src, DefaultAdjustments(), Orientation{RotationDegrees: 30}, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for orientation, got %v", err)
	}

	empty := &bitmap.Bitmap{}
	if _, err := Run(context.Background(), empty, DefaultAdjustments(), Orientation{}, nil); !errors.Is(err, bitmap.ErrEmptyBitmap) {
		t.Fatalf("expected ErrEmptyBitmap, got %v", err)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	src := buildTestBitmap(t, 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, src, DefaultAdjustments(), Orientation{}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
