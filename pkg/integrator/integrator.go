package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray with at most depth
	// bounces. The sampler belongs to the calling worker.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Color
}

// Background is a vertical gradient environment seen by escaping rays
type Background struct {
	Top    core.Color // Color straight up
	Bottom core.Color // Color straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewColor(0.5, 0.7, 1.0),
		Bottom: core.White,
	}
}

// At returns the gradient color for a ray direction
func (b Background) At(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Lerp(b.Top, t)
}
