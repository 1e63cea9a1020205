package output

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an image encoding
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ErrUnknownFormat is returned for a format or file extension with no encoder
var ErrUnknownFormat = errors.New("unknown image format")

// Formats lists the supported formats
func Formats() []Format {
	return []Format{PPM, PNG, BMP, TIFF}
}

// ParseFormat converts a format name such as "png" or "TIF" to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "ppm":
		return PPM, nil
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case PPM:
		return "image/x-portable-pixmap"
	case PNG:
		return "image/png"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	}
	return "application/octet-stream"
}

// Write encodes the frame to w in the given format
func Write(w io.Writer, frame *renderer.Frame, format Format) error {
	var err error
	switch format {
	case PPM:
		err = WritePPM(w, frame)
	case PNG:
		err = png.Encode(w, frame.Image())
	case BMP:
		err = bmp.Encode(w, frame.Image())
	case TIFF:
		err = tiff.Encode(w, frame.Image(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// WritePPM writes the frame as a plain-text P3 pixmap, one "r g b" line
// per pixel with the top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)
	for _, p := range frame.Pixels {
		fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B)
	}
	return bw.Flush()
}
