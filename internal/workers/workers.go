package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// NewWorkers groups workers; nil entries are skipped.
func NewWorkers(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Add appends worker to the group. It must not be called while Run is
// running.
func (w *Workers) Add(worker Worker) {
	if worker != nil {
		w.workers = append(w.workers, worker)
	}
}

// Len returns the number of workers in the group.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and waits for all of them. It returns the first
// error; the context passed to the others is cancelled at that point.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error { return worker.Run(gctx) })
	}
	return g.Wait()
}
