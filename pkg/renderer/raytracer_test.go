package renderer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// testScene is a minimal Scene implementation
type testScene struct {
	camera *Camera
	world  *geometry.World
	config core.SamplingConfig
}

func (s *testScene) GetCamera() *Camera { return s.camera }
func (s *testScene) GetWorld() geometry.Shape { return s.world }
func (s *testScene) GetBackground() integrator.Background { return integrator.DefaultBackground() }
func (s *testScene) GetSamplingConfig() core.SamplingConfig { return s.config }

func newTestScene(width, height int) *testScene {
	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewPoint3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewPoint3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewPoint3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewPoint3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	)

	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewPoint3(0, 0, 1),
		LookAt:      core.NewPoint3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: float64(width) / float64(height),
		Aperture:    0.05,
	})

	return &testScene{
		camera: camera,
		world:  world,
		config: core.SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: 4,
			MaxDepth:        10,
			Seed:            7,
			NumWorkers:      1,
		},
	}
}

func renderScene(t *testing.T, scene *testScene, modify func(*core.SamplingConfig)) *Frame {
	t.Helper()
	rt := NewRaytracer(scene, core.NopLogger{})
	config := scene.config
	if modify != nil {
		modify(&config)
	}
	rt.SetSamplingConfig(config)

	frame, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return frame
}

func TestRaytracer_DeterministicWithFixedSeed(t *testing.T) {
	scene := newTestScene(32, 18)

	first := renderScene(t, scene, nil)
	second := renderScene(t, scene, nil)
	parallel := renderScene(t, scene, func(c *core.SamplingConfig) { c.NumWorkers = 4 })

	for idx := range first.Pixels {
		if first.Pixels[idx] != second.Pixels[idx] {
			t.Fatalf("Repeated render differs at pixel %d: %v vs %v", idx, first.Pixels[idx], second.Pixels[idx])
		}
		if first.Pixels[idx] != parallel.Pixels[idx] {
			t.Fatalf("Parallel render differs at pixel %d: %v vs %v", idx, first.Pixels[idx], parallel.Pixels[idx])
		}
	}

	reseeded := renderScene(t, scene, func(c *core.SamplingConfig) { c.Seed = 8 })
	same := true
	for idx := range first.Pixels {
		if first.Pixels[idx] != reseeded.Pixels[idx] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected a different seed to change the image")
	}
}

func TestRaytracer_DepthZeroIsBlack(t *testing.T) {
	frame := renderScene(t, newTestScene(16, 9), func(c *core.SamplingConfig) { c.MaxDepth = 0 })
	for idx, p := range frame.Pixels {
		if p != (RGB{}) {
			t.Fatalf("Expected black pixel at %d, got %v", idx, p)
		}
	}
}

func TestRaytracer_LuminanceGrowsWithDepth(t *testing.T) {
	scene := newTestScene(32, 18)
	shallow := renderScene(t, scene, func(c *core.SamplingConfig) { c.MaxDepth = 1 }).AverageLuminance()
	deep := renderScene(t, scene, func(c *core.SamplingConfig) { c.MaxDepth = 20 }).AverageLuminance()

	if shallow <= 0 {
		t.Errorf("Expected sky to be visible at depth 1, got luminance %f", shallow)
	}
	if deep <= shallow {
		t.Errorf("Expected depth 20 (%f) to be brighter than depth 1 (%f)", deep, shallow)
	}
}

func TestRaytracer_EmptyWorldShowsSkyGradient(t *testing.T) {
	scene := newTestScene(8, 8)
	scene.world = geometry.NewWorld()
	frame := renderScene(t, scene, nil)

	top := frame.At(4, 0)
	bottom := frame.At(4, frame.Height-1)
	if top.R >= bottom.R {
		t.Errorf("Expected top row (%v) bluer than bottom row (%v)", top, bottom)
	}
	if top.B != 255 {
		t.Errorf("Expected full blue in the sky, got %v", top)
	}
}

func TestRaytracer_ProgressCallback(t *testing.T) {
	scene := newTestScene(8, 6)
	rt := NewRaytracer(scene, core.NopLogger{})

	var mu sync.Mutex
	seen := make(map[int]bool)
	lastRemaining := -1
	rt.SetProgressCallback(func(row, remaining int) {
		mu.Lock()
		defer mu.Unlock()
		seen[row] = true
		lastRemaining = remaining
	})

	_, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(seen) != 6 {
		t.Errorf("Expected 6 rows reported, got %d", len(seen))
	}
	if lastRemaining != 0 {
		t.Errorf("Expected final remaining count 0, got %d", lastRemaining)
	}
	if stats.TotalPixels != 48 || stats.TotalSamples != 48*4 || stats.RowsRendered != 6 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AverageSamples() != 4 {
		t.Errorf("Expected 4 samples per pixel, got %f", stats.AverageSamples())
	}
}

func TestRaytracer_InvalidConfig(t *testing.T) {
	scene := newTestScene(8, 8)
	rt := NewRaytracer(scene, core.NopLogger{})
	config := scene.config
	config.SamplesPerPixel = 0
	rt.SetSamplingConfig(config)

	if _, _, err := rt.Render(context.Background()); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := NewRaytracer(newTestScene(16, 16), core.NopLogger{})
	frame, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame from a cancelled render")
	}
}

func TestRaytracer_SinglePixelImage(t *testing.T) {
	// A 1x1 image must not divide by zero when normalizing pixel coordinates
	frame := renderScene(t, newTestScene(1, 1), nil)
	if len(frame.Pixels) != 1 {
		t.Fatalf("Expected one pixel, got %d", len(frame.Pixels))
	}
}
