package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"golang.org/x/image/colornames"
)

// NewShowcaseScene creates a small scene with one sphere of each material
// on a large ground sphere, including a hollow glass bubble
func NewShowcaseScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewPoint3(-2, 2, 1),
		LookAt:        core.NewPoint3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.05,
		FocusDistance: 0, // Auto-calculate focus distance
	}

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 50
	samplingConfig.Height = heightForAspect(samplingConfig.Width, cameraConfig.AspectRatio)

	// Create materials
	lambertianGround := material.NewLambertian(core.ColorFromRGBA(colornames.Olivedrab))
	lambertianBlue := material.NewLambertian(core.ColorFromRGBA(colornames.Steelblue))
	metalGold := material.NewMetal(core.ColorFromRGBA(colornames.Goldenrod), 0.3)
	metalSilver := material.NewMetal(core.ColorFromRGBA(colornames.Silver), 0.0)
	materialGlass := material.NewDielectric(1.5)

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewPoint3(0, -100.5, -1), 100, lambertianGround),
		geometry.NewSphere(core.NewPoint3(0, 0, -1), 0.5, lambertianBlue),
		geometry.NewSphere(core.NewPoint3(1, 0, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewPoint3(0, -0.3, 0), 0.2, metalSilver),

		// Hollow glass sphere: the negative radius flips the inner shell's
		// normals inward
		geometry.NewSphere(core.NewPoint3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewPoint3(-1, 0, -1), -0.45, materialGlass),
	)

	return &Scene{
		Name:           ShowcaseSceneName,
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     integrator.DefaultBackground(),
	}
}
