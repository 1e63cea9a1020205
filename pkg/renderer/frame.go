package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// RGB is a quantized pixel with channels in [0, 256)
type RGB struct {
	R, G, B uint8
}

// Frame is a rendered image stored row-major with the top row first
type Frame struct {
	Width  int
	Height int
	Pixels []RGB
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]RGB, width*height),
	}
}

// Row returns the pixels of image row j, where j = 0 is the bottom row.
// Rows are disjoint slices, so workers can fill them concurrently.
func (f *Frame) Row(j int) []RGB {
	y := f.Height - 1 - j
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}

// At returns the pixel at column x and row y counted from the top
func (f *Frame) At(x, y int) RGB {
	return f.Pixels[y*f.Width+x]
}

// Image returns the frame as an RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// DiffCount returns how many pixels differ from other. Frames of different
// sizes cannot be compared.
func (f *Frame) DiffCount(other *Frame) (int, error) {
	if f.Width != other.Width || f.Height != other.Height {
		return 0, fmt.Errorf("frame size %dx%d does not match %dx%d", f.Width, f.Height, other.Width, other.Height)
	}
	count := 0
	for i, p := range f.Pixels {
		if p != other.Pixels[i] {
			count++
		}
	}
	return count, nil
}

// AverageLuminance returns the mean luminance of the frame in [0, 1)
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	var total float64
	for _, p := range f.Pixels {
		total += core.NewColor(float64(p.R), float64(p.G), float64(p.B)).Luminance() / 256.0
	}
	return total / float64(len(f.Pixels))
}

// ToneMap resolves a sum of samples to a displayable pixel: average,
// gamma 2 (square root), clamp to [0, 0.999] and scale to [0, 256)
func ToneMap(sum core.Color, samples int) RGB {
	c := sum.Divide(float64(samples)).Sqrt().Clamp(0.0, 0.999)
	return RGB{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
	}
}

// quantize maps [0, 0.999] to [0, 256) by truncation; NaN maps to 0
func quantize(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	return uint8(256 * channel)
}
