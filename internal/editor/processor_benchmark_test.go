package editor

import (
	"context"
	"fmt"
	"testing"

	"github.com/gradientlab/darkroom/internal/domain"
	"github.com/gradientlab/darkroom/internal/pipeline"
)

func BenchmarkProcessorEdit(b *testing.B) {
	source := buildTestPNG(b, 1920, 1080)
	processor := NewLocalProcessor(b.TempDir(), 0)
	processor.fetcher = staticFetcher{data: source}
	processor.emitter = discardEmitter{}

	req := Request{
		JobID:      "bench",
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  "ignored.png",
		Edit: domain.EditSpec{
			Adjustments: pipeline.Adjustments{Brightness: 120, Contrast: 110, Saturation: 90, Blur: 2},
			Orientation: pipeline.Orientation{RotationDegrees: 90, FlipHorizontal: true},
			Format:      "jpeg",
			Quality:     82,
		},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req.JobID = fmt.Sprintf("bench-edit-%d", i)
		if _, err := processor.Process(context.Background(), req); err != nil {
			b.Fatalf("process: %v", err)
		}
	}
}

type staticFetcher struct {
	data []byte
}

func (f staticFetcher) Fetch(_ context.Context, _ Request) ([]byte, error) {
	return f.data, nil
}

type discardEmitter struct{}

func (discardEmitter) Emit(_ context.Context, _ Request, data []byte, format string, width, height int) (Output, error) {
	return Output{
		Format:  format,
		Bytes:   len(data),
		Width:   width,
		Height:  height,
		Success: true,
	}, nil
}
