package output

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/png" // PNG decoder
	"io"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// Size limits for decoded images
const (
	MaxDimension = 16384
	MaxPixels    = 1 << 26
)

// checkSize rejects dimensions that are not positive or would need an
// unreasonably large frame
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", width, height)
	}
	if width > MaxDimension || height > MaxDimension || width*height > MaxPixels {
		return fmt.Errorf("image size %dx%d exceeds the %dx%d, %d pixel limit", width, height, MaxDimension, MaxDimension, MaxPixels)
	}
	return nil
}

// Read decodes a PPM, PNG, BMP or TIFF image back into a frame
func Read(r io.Reader) (*renderer.Frame, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if string(magic) == "P3" {
		return readPPM(br)
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	// Check the size before decoding allocates the pixels
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if err := checkSize(config.Width, config.Height); err != nil {
		return nil, err
	}

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	frame := renderer.NewFrame(bounds.Dx(), bounds.Dy())
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			frame.Pixels[y*frame.Width+x] = renderer.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	return frame, nil
}

func readPPM(r io.Reader) (*renderer.Frame, error) {
	var width, height, maxVal int
	if _, err := fmt.Fscanf(r, "P3\n%d %d\n%d\n", &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("failed to parse PPM header: %w", err)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("unsupported PPM max value %d", maxVal)
	}
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	frame := renderer.NewFrame(width, height)
	for i := range frame.Pixels {
		var red, green, blue uint8
		if _, err := fmt.Fscan(r, &red, &green, &blue); err != nil {
			return nil, fmt.Errorf("failed to read pixel %d: %w", i, err)
		}
		frame.Pixels[i] = renderer.RGB{R: red, G: green, B: blue}
	}
	return frame, nil
}
