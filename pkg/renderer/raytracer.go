package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetBackground() integrator.Background
	GetSamplingConfig() core.SamplingConfig
}

// ProgressFunc is called after each row completes with the number of rows
// still outstanding. It may be called from several goroutines, but never
// concurrently.
type ProgressFunc func(row, remaining int)

// Raytracer handles the rendering process
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     core.SamplingConfig
	logger     core.Logger
	progress   ProgressFunc
}

// NewRaytracer creates a new raytracer for a scene
func NewRaytracer(scene Scene, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	rt := &Raytracer{
		camera:     scene.GetCamera(),
		world:      scene.GetWorld(),
		integrator: integrator.NewPathTracingIntegrator(scene.GetBackground()),
		config:     scene.GetSamplingConfig(),
		logger:     logger,
	}
	rt.progress = rt.logProgress
	return rt
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config core.SamplingConfig) {
	rt.config = config
}

// GetSamplingConfig returns the sampling configuration in use
func (rt *Raytracer) GetSamplingConfig() core.SamplingConfig {
	return rt.config
}

// SetProgressCallback replaces the default "Scanlines remaining" logging
func (rt *Raytracer) SetProgressCallback(progress ProgressFunc) {
	if progress == nil {
		progress = func(int, int) {}
	}
	rt.progress = progress
}

func (rt *Raytracer) logProgress(row, remaining int) {
	rt.logger.Printf("Scanlines remaining: %d\n", remaining)
}

// SamplePixel traces SamplesPerPixel jittered camera rays through pixel
// (i, j) and returns the unaveraged sum of their colors
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Color {
	uScale := 1.0 / float64(max(rt.config.Width-1, 1))
	vScale := 1.0 / float64(max(rt.config.Height-1, 1))

	colorAccum := core.Black
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		u := (float64(i) + sampler.Get1D()) * uScale
		v := (float64(j) + sampler.Get1D()) * vScale

		ray := rt.camera.GetRay(u, v, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler, rt.config.MaxDepth))
	}
	return colorAccum
}

// RenderRow renders image row task.Row into row using a random stream
// private to the task
func (rt *Raytracer) RenderRow(task RowTask, row []RGB) RowResult {
	sampler := core.NewSeededSampler(task.Seed)
	for i := range row {
		row[i] = ToneMap(rt.SamplePixel(i, task.Row, sampler), rt.config.SamplesPerPixel)
	}
	return RowResult{
		Row: task.Row,
		Stats: RenderStats{
			TotalPixels:  len(row),
			TotalSamples: len(row) * rt.config.SamplesPerPixel,
			RowsRendered: 1,
		},
	}
}

// Render renders the full image in parallel, one task per row. Each row
// draws from its own stream seeded with Seed+row, so the output depends
// only on the seed and not on the worker count or scheduling.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	pool := NewWorkerPool(rt.config.NumWorkers)

	// Rows are handed out from the top of the image down
	tasks := make([]RowTask, 0, rt.config.Height)
	for j := rt.config.Height - 1; j >= 0; j-- {
		tasks = append(tasks, RowTask{Row: j, Seed: rt.config.Seed + int64(j)})
	}

	var mu sync.Mutex
	stats := RenderStats{Workers: pool.GetNumWorkers()}
	remaining := len(tasks)

	err := pool.Run(ctx, tasks,
		func(task RowTask) RowResult {
			return rt.RenderRow(task, frame.Row(task.Row))
		},
		func(result RowResult) {
			mu.Lock()
			defer mu.Unlock()
			stats.Merge(result.Stats)
			remaining--
			rt.progress(result.Row, remaining)
		})

	stats.Duration = time.Since(startTime)
	if err != nil {
		return nil, stats, fmt.Errorf("render aborted after %d of %d rows: %w", stats.RowsRendered, len(tasks), err)
	}

	rt.logger.Printf("Render completed in %v: %dx%d, %d samples (%.0f samples/s) on %d workers\n",
		stats.Duration, frame.Width, frame.Height, stats.TotalSamples, stats.SamplesPerSecond(), stats.Workers)

	return frame, stats, nil
}
