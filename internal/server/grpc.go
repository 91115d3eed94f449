package server

import (
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-state-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-state-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-state-sync/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	address string
	server  *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer(handler.ServerOptions()...)
	handler.Register(srv)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  srv,
		logger:  logger,
	}
}

func (g *grpcServer) run() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", g.address, err)
	}

	g.logger.Info().Str("address", g.address).Msg("Launching GRPC server")
	if err = g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (g *grpcServer) shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
