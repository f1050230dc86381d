package editor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gradientlab/darkroom/internal/domain"
	"github.com/gradientlab/darkroom/internal/pipeline"
)

func TestLocalProcessorFileInEditFileOut(t *testing.T) {
	tmp := t.TempDir()
	inputPath := filepath.Join(tmp, "input.png")
	outputDir := filepath.Join(tmp, "out")

	srcBytes := buildTestPNG(t, 240, 120)
	if err := os.WriteFile(inputPath, srcBytes, 0o644); err != nil {
		t.Fatalf("write input image: %v", err)
	}

	processor := NewLocalProcessor(outputDir, 0)

	req := Request{
		JobID:      "job-local-1",
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  inputPath,
		Edit: domain.EditSpec{
			Adjustments: pipeline.Adjustments{Brightness: 140, Contrast: 100, Saturation: 100, Blur: 2},
			Orientation: pipeline.Orientation{RotationDegrees: 90},
			Format:      "png",
		},
	}

	result, err := processor.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("process request: %v", err)
	}

	if result.SourceBytes != len(srcBytes) {
		t.Fatalf("expected source bytes %d, got %d", len(srcBytes), result.SourceBytes)
	}
	out := result.Output
	if out.Format != "png" {
		t.Fatalf("expected png output format, got %s", out.Format)
	}
	// 90-degree rotation swaps dimensions.
	if out.Width != 120 || out.Height != 240 {
		t.Fatalf("expected 120x240 output, got %dx%d", out.Width, out.Height)
	}
	verifyImageSize(t, out.Path, 120, 240)
}

func TestLocalProcessorIdentityEditRoundTripsPixels(t *testing.T) {
	tmp := t.TempDir()
	inputPath := filepath.Join(tmp, "input.png")

	srcBytes := buildTestPNG(t, 32, 20)
	if err := os.WriteFile(inputPath, srcBytes, 0o644); err != nil {
		t.Fatalf("write input image: %v", err)
	}

	processor := NewLocalProcessor(filepath.Join(tmp, "out"), 0)
	result, err := processor.Process(context.Background(), Request{
		JobID:      "job-identity",
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  inputPath,
		Edit: domain.EditSpec{
			Adjustments: pipeline.DefaultAdjustments(),
			Format:      "png",
		},
	})
	if err != nil {
		t.Fatalf("process request: %v", err)
	}

	want := decodePNG(t, srcBytes)
	got := decodePNG(t, readFile(t, result.Output.Path))
	if !want.Bounds().Eq(got.Bounds()) {
		t.Fatalf("bounds differ: %v vs %v", want.Bounds(), got.Bounds())
	}
	for i := range want.Pix {
		if want.Pix[i] != got.Pix[i] {
			t.Fatalf("identity edit changed pixel byte %d", i)
		}
	}
}

func TestLocalProcessorRejectsInvalidEdit(t *testing.T) {
	processor := NewLocalProcessor(t.TempDir(), 0)

	_, err := processor.Process(context.Background(), Request{
		JobID:      "job-invalid",
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  "ignored.png",
		Edit: domain.EditSpec{
			Adjustments: pipeline.Adjustments{Brightness: 400, Contrast: 100, Saturation: 100},
		},
	})
	if err == nil {
		t.Fatal("expected validation error for out-of-range brightness")
	}
}

func TestLocalProcessorUnsupportedSourceType(t *testing.T) {
	processor := NewLocalProcessor(t.TempDir(), 0)

	_, err := processor.Process(context.Background(), Request{
		JobID:      "job-unsupported",
		SourceType: domain.SourceTypeS3Presigned,
		ObjectKey:  "uploads/job/source",
		Edit: domain.EditSpec{
			Adjustments: pipeline.DefaultAdjustments(),
		},
	})
	if err == nil {
		t.Fatal("expected unsupported source_type error")
	}
}

func buildTestPNG(t testing.TB, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 255) / w),
				G: uint8((y * 255) / h),
				B: 140,
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode source png: %v", err)
	}
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		out := image.NewNRGBA(img.Bounds())
		for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
			for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
				out.Set(x, y, img.At(x, y))
			}
		}
		return out
	}
	return nrgba
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func verifyImageSize(t *testing.T, path string, wantW, wantH int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open image %s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode image %s: %v", path, err)
	}

	if got := img.Bounds().Dx(); got != wantW {
		t.Fatalf("expected width %d, got %d", wantW, got)
	}
	if got := img.Bounds().Dy(); got != wantH {
		t.Fatalf("expected height %d, got %d", wantH, got)
	}
}
