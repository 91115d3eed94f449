package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/handler"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	if handlers == nil {
		return nil, errNilHandlers
	}

	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
		return
	}
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.httpServer != nil {
		g.Go(s.httpServer.run)
	}
	if s.gRPCServer != nil {
		g.Go(s.gRPCServer.run)
	}

	// stop every server once ctx is done or one of them failed
	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	return g.Wait()
}

func (s *server) shutdown() {
	if s.httpServer != nil {
		s.httpServer.shutdown()
	}
	if s.gRPCServer != nil {
		s.gRPCServer.shutdown()
	}
}
