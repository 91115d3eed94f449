// Package grpc serves the remote-state API over gRPC.
//
// The service statesync.v1.RemoteStates is declared by hand in
// [ServiceDesc] and carried with the JSON codec registered by the utils
// package, so the request and response messages are the same models the
// HTTP transport uses.
package grpc

import (
	"context"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/models"
	"google.golang.org/grpc"
)

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the RemoteStates service to s.
func (h *Handler) Register(s *grpc.Server) {
	s.RegisterService(&ServiceDesc, h)
}

// ServerOptions returns the interceptors the handler relies on: request
// logging first, then authentication.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.loggingInterceptor, h.authInterceptor),
	}
}

func (h *Handler) Ping(ctx context.Context, _ *models.HealthResponse) (*models.HealthResponse, error) {
	if err := h.services.RemoteStateService.Ping(ctx); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &models.HealthResponse{Status: "ok"}, nil
}

func (h *Handler) Fetch(ctx context.Context, req *models.StateRequest) (*models.RemoteState, error) {
	state, err := h.services.RemoteStateService.Fetch(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &state, nil
}

func (h *Handler) Push(ctx context.Context, req *models.PushStateRequest) (*models.VersionResponse, error) {
	version, err := h.services.RemoteStateService.Push(ctx, models.PushStateRequest{ID: req.ID, State: req.State})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &models.VersionResponse{Version: version}, nil
}

func (h *Handler) Delete(ctx context.Context, req *models.StateRequest) (*models.DeleteResponse, error) {
	deleted, err := h.services.RemoteStateService.Delete(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &models.DeleteResponse{Deleted: deleted}, nil
}

func (h *Handler) List(ctx context.Context, req *models.ListStatesRequest) (*models.ListStatesResponse, error) {
	ids, err := h.services.RemoteStateService.List(ctx, models.ListStatesRequest{Prefix: req.Prefix, Limit: req.Limit})
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	if ids == nil {
		ids = []models.StateID{}
	}
	return &models.ListStatesResponse{IDs: ids, Length: len(ids)}, nil
}

func (h *Handler) GetVersion(ctx context.Context, req *models.StateRequest) (*models.VersionResponse, error) {
	version, err := h.services.RemoteStateService.GetVersion(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &models.VersionResponse{Version: version}, nil
}
