package core

import (
	"image/color"
	"math"
)

// Color is a linear RGB radiance or reflectance value
type Color Vec3

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{X: r, Y: g, Z: b}
}

// Black and White are the zero and unit colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// ColorFromRGBA converts an 8-bit sRGB-ish color to a linear Color by
// dividing each channel by 255. Alpha is ignored.
func ColorFromRGBA(c color.RGBA) Color {
	return Color{
		X: float64(c.R) / 255.0,
		Y: float64(c.G) / 255.0,
		Z: float64(c.B) / 255.0,
	}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.X + other.X, c.Y + other.Y, c.Z + other.Z}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.X * scalar, c.Y * scalar, c.Z * scalar}
}

// MultiplyColor returns the component-wise product (attenuation)
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.X * other.X, c.Y * other.Y, c.Z * other.Z}
}

// Divide divides every channel by a scalar
func (c Color) Divide(scalar float64) Color {
	return Color{c.X / scalar, c.Y / scalar, c.Z / scalar}
}

// Lerp blends from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1.0 - t).Add(other.Multiply(t))
}

// Sqrt applies gamma 2 correction to every channel
func (c Color) Sqrt() Color {
	return Color{math.Sqrt(c.X), math.Sqrt(c.Y), math.Sqrt(c.Z)}
}

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		X: max(minVal, min(maxVal, c.X)),
		Y: max(minVal, min(maxVal, c.Y)),
		Z: max(minVal, min(maxVal, c.Z)),
	}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.X + 0.587*c.Y + 0.114*c.Z
}

// Vec returns the channels as a Vec3
func (c Color) Vec() Vec3 {
	return Vec3(c)
}
