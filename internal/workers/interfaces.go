// Package workers runs the background jobs of the client.
//
// A [Worker] blocks in Run until its context is done. [Workers] runs a set
// of workers in one errgroup, so the first failing worker stops the others.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done and returns nil on a clean stop. A non-nil
// error stops every other worker run by the same [Workers].
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

// Run implements [Worker].
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
