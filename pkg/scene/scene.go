package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig core.SamplingConfig
	Background     integrator.Background // Color of rays that escape the world
}

// GetCamera builds the camera from the current camera configuration
func (s *Scene) GetCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// GetWorld returns the shapes to render
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetBackground returns the sky gradient
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetSamplingConfig returns the scene's default sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// SetImageSize changes the output resolution and keeps the camera's
// aspect ratio in step with it
func (s *Scene) SetImageSize(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if width > 0 && height > 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
	}
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// heightForAspect returns the image height for a width and aspect ratio,
// never less than one pixel
func heightForAspect(width int, aspectRatio float64) int {
	return max(int(float64(width)/aspectRatio), 1)
}
