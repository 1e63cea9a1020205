package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row  int   // Image row j, 0 = bottom
	Seed int64 // Seed of the row's private random stream
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row   int
	Stats RenderStats
}

// RowFunc renders one row. It runs on a worker goroutine and must only
// write state owned by that row.
type RowFunc func(task RowTask) RowResult

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and calls onResult as each one completes.
// onResult is called from worker goroutines and must be safe for
// concurrent use. Run stops handing out tasks once ctx is done and
// returns the context's error.
func (wp *WorkerPool) Run(ctx context.Context, tasks []RowTask, render RowFunc, onResult func(RowResult)) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan RowTask)

	g.Go(func() error {
		defer close(taskQueue) // No more tasks
		for _, task := range tasks {
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for task := range taskQueue {
				if err := ctx.Err(); err != nil {
					return err
				}
				result := render(task)
				if onResult != nil {
					onResult(result)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
