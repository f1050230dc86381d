package pipeline

import (
	"context"
	"testing"
)

func BenchmarkRunAdjustments(b *testing.B) {
	src := buildTestBitmap(b, 1920, 1080)
	a := Adjustments{Brightness: 120, Contrast: 110, Saturation: 80, Blur: 0}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), src, a, Orientation{}, nil); err != nil {
			b.Fatalf("run: %v", err)
		}
	}
}

func BenchmarkRunBlur(b *testing.B) {
	src := buildTestBitmap(b, 1920, 1080)
	a := Adjustments{Brightness: 100, Contrast: 100, Saturation: 100, Blur: 8}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), src, a, Orientation{}, nil); err != nil {
			b.Fatalf("run: %v", err)
		}
	}
}

func BenchmarkRunRotate(b *testing.B) {
	src := buildTestBitmap(b, 1920, 1080)
	o := Orientation{RotationDegrees: 90, FlipHorizontal: true}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), src, DefaultAdjustments(), o, nil); err != nil {
			b.Fatalf("run: %v", err)
		}
	}
}
