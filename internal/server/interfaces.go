package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down
	// gracefully.
	RunServer()

	// Run serves until ctx is done or a server fails. It returns the first
	// serve error, nil after a clean shutdown.
	Run(ctx context.Context) error
}
