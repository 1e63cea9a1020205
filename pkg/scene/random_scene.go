package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Clearance kept around the large metal sphere when scattering small spheres
const randomSceneClearance = 0.9

// NewRandomScene creates the classic final scene: a huge ground sphere, a
// 22x22 grid of small randomly shaded spheres and three large feature
// spheres. The same seed always produces the same layout.
func NewRandomScene(seed int64) *Scene {
	sampler := core.NewSeededSampler(seed)

	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewPoint3(13, 2, 3),
		LookAt:        core.NewPoint3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.Seed = seed
	samplingConfig.Height = heightForAspect(samplingConfig.Width, cameraConfig.AspectRatio)

	world := geometry.NewWorld()

	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewPoint3(0, -1000, 0), 1000, ground))

	glass := material.NewDielectric(1.5)
	keepOut := core.NewPoint3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewPoint3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Distance(keepOut) <= randomSceneClearance {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := core.Color(sampler.Get3D()).MultiplyColor(core.Color(sampler.Get3D()))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// metal
				albedo := core.Color(core.RandomVecInRange(sampler, 0.5, 1))
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = glass
			}
			world.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	world.Add(
		geometry.NewSphere(core.NewPoint3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewPoint3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewPoint3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Name:           RandomSceneName,
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     integrator.DefaultBackground(),
	}
}
