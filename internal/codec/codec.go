// Package codec decodes uploaded image bytes into pipeline bitmaps and
// encodes finished bitmaps for export. The pipeline itself never sees file
// formats; this package is the boundary where PNG/JPEG/WebP negotiation lives.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/gradientlab/darkroom/internal/bitmap"

	_ "golang.org/x/image/webp"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"

	DefaultJPEGQuality = 80
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Decode parses image bytes into a bitmap and reports the detected source
// format ("png", "jpeg", "webp", ...).
func Decode(data []byte) (*bitmap.Bitmap, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode source image: %w", err)
	}

	b, err := bitmap.FromImage(img)
	if err != nil {
		return nil, "", err
	}
	return b, format, nil
}

// Encode serializes a bitmap in the requested format. Quality applies to
// JPEG only; out-of-range values fall back to the default.
func Encode(b *bitmap.Bitmap, format string, quality int) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch NormalizeFormat(format) {
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, b.ToNRGBA(), &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatPNG:
		encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := encoder.Encode(&buf, b.ToNRGBA()); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// NormalizeFormat maps user-supplied format names onto the supported encoder
// set. Unknown or empty formats fall back to PNG, the lossless default.
func NormalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	default:
		return FormatPNG
	}
}

// ContentType returns the MIME type for an output format.
func ContentType(format string) string {
	switch NormalizeFormat(format) {
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}
