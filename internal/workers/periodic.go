// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/logger"
)

// Periodic calls a task every interval until its context is done. Task
// errors are logged and do not stop the worker.
type Periodic struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	skip     func() bool

	logger *logger.Logger
}

// NewPeriodic returns a worker running task every interval. A non-positive
// interval disables the worker: Run then just waits for ctx.
func NewPeriodic(name string, interval time.Duration, task func(ctx context.Context) error, logger *logger.Logger) *Periodic {
	return &Periodic{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger.WithComponent(name),
	}
}

// SkipWhen makes the worker skip ticks while skip reports true.
func (p *Periodic) SkipWhen(skip func() bool) *Periodic {
	p.skip = skip
	return p
}

// Run implements [Worker].
func (p *Periodic) Run(ctx context.Context) error {
	if p.interval <= 0 {
		p.logger.Debug().Msg("disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if p.skip != nil && p.skip() {
				continue
			}
			if err := p.task(ctx); err != nil {
				p.logger.Warn().Err(err).Msg("periodic task failed")
			}
		}
	}
}
