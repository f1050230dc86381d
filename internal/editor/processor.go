// Package editor runs one edit job end to end: fetch the source bytes,
// decode, evaluate the pipeline, encode, and emit the result. Fetching and
// emitting are interfaces so the worker can run against local files in
// development and object storage in production.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradientlab/darkroom/internal/codec"
	"github.com/gradientlab/darkroom/internal/domain"
	"github.com/gradientlab/darkroom/internal/pipeline"
)

var ErrUnsupportedSourceType = errors.New("unsupported source_type")

type Request struct {
	JobID      string
	SourceType string
	ObjectKey  string
	Edit       domain.EditSpec
}

type Output struct {
	Format  string
	Path    string
	Bytes   int
	Width   int
	Height  int
	Success bool
}

type Result struct {
	SourceBytes int
	Output      Output
}

type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

type Emitter interface {
	Emit(ctx context.Context, req Request, data []byte, format string, width, height int) (Output, error)
}

type Processor struct {
	fetcher Fetcher
	emitter Emitter
	options pipeline.Options
}

func NewLocalProcessor(outputDir string, workers int) *Processor {
	return &Processor{
		fetcher: LocalFileFetcher{},
		emitter: LocalFileEmitter{OutputDir: outputDir},
		options: pipeline.Options{Workers: workers},
	}
}

func NewProcessor(fetcher Fetcher, emitter Emitter, workers int) (*Processor, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if emitter == nil {
		return nil, errors.New("emitter is required")
	}
	return &Processor{
		fetcher: fetcher,
		emitter: emitter,
		options: pipeline.Options{Workers: workers},
	}, nil
}

// Process evaluates one edit job. The pipeline always runs from the pristine
// decoded source; an error at any stage returns before anything is emitted,
// so no partial output ever lands.
func (p *Processor) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.JobID) == "" {
		return Result{}, errors.New("job_id is required")
	}
	if err := req.Edit.Validate(); err != nil {
		return Result{}, fmt.Errorf("validate edit: %w", err)
	}

	sourceBytes, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch stage: %w", err)
	}

	src, srcFormat, err := codec.Decode(sourceBytes)
	if err != nil {
		return Result{}, fmt.Errorf("decode stage: %w", err)
	}

	edited, err := pipeline.Run(ctx, src, req.Edit.Adjustments, req.Edit.Orientation, &p.options)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline stage: %w", err)
	}

	format := req.Edit.Format
	if strings.TrimSpace(format) == "" {
		format = srcFormat
	}
	format = codec.NormalizeFormat(format)

	data, err := codec.Encode(edited, format, req.Edit.Quality)
	if err != nil {
		return Result{}, fmt.Errorf("encode stage: %w", err)
	}

	output, err := p.emitter.Emit(ctx, req, data, format, edited.Width, edited.Height)
	if err != nil {
		return Result{}, fmt.Errorf("emit stage: %w", err)
	}

	return Result{
		SourceBytes: len(sourceBytes),
		Output:      output,
	}, nil
}

type LocalFileFetcher struct{}

func (LocalFileFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if !strings.EqualFold(req.SourceType, domain.SourceTypeLocalFile) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSourceType, req.SourceType)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(req.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("read input file %s: %w", req.ObjectKey, err)
	}
	return data, nil
}

type LocalFileEmitter struct {
	OutputDir string
}

func (e LocalFileEmitter) Emit(_ context.Context, req Request, data []byte, format string, width, height int) (Output, error) {
	if strings.TrimSpace(e.OutputDir) == "" {
		return Output{}, errors.New("output directory is required")
	}

	jobDir := filepath.Join(e.OutputDir, sanitizePathToken(req.JobID))
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return Output{}, fmt.Errorf("create output dir: %w", err)
	}

	filename := "edited." + codec.NormalizeFormat(format)
	fullPath := filepath.Join(jobDir, filename)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return Output{}, fmt.Errorf("write output file: %w", err)
	}

	return Output{
		Format:  codec.NormalizeFormat(format),
		Path:    fullPath,
		Bytes:   len(data),
		Width:   width,
		Height:  height,
		Success: true,
	}, nil
}

func sanitizePathToken(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return "unknown"
	}

	var b strings.Builder
	b.Grow(len(in))
	for _, r := range in {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
