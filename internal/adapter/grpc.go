package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type grpcRemoteProvider struct {
	conn  *grpc.ClientConn
	token string

	logger *logger.Logger
}

// NewGRPCRemoteProvider constructs a gRPC implementation of [RemoteProvider]
// for the statesync.v1.RemoteStates service at adapterCfg.GRPCAddress.
//
// Messages are exchanged with the JSON codec registered by the utils package.
// The connection is established lazily; call Close to release it.
func NewGRPCRemoteProvider(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteProvider, error) {
	address := strings.TrimSpace(adapterCfg.GRPCAddress)
	if address == "" {
		return nil, fmt.Errorf("%w: empty grpc address", ErrInvalidAddress)
	}

	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(utils.JSONCodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("dial grpc remote: %w", err)
	}

	return newGRPCRemoteProvider(conn, appCfg.Token, logger), nil
}

func newGRPCRemoteProvider(conn *grpc.ClientConn, token string, logger *logger.Logger) *grpcRemoteProvider {
	return &grpcRemoteProvider{conn: conn, token: strings.TrimSpace(token), logger: logger}
}

// Name implements [RemoteProvider].
func (g *grpcRemoteProvider) Name() string {
	return "grpc"
}

// IsAvailable implements [RemoteProvider] with the Ping method.
func (g *grpcRemoteProvider) IsAvailable(ctx context.Context) bool {
	var resp models.HealthResponse
	if err := g.invoke(ctx, utils.RemoteStatesPing, &models.HealthResponse{}, &resp); err != nil {
		g.logger.Debug().Err(err).Str("func", "grpcRemoteProvider.IsAvailable").Msg("ping failed")
		return false
	}
	return true
}

// Fetch implements [RemoteProvider]. codes.NotFound means the remote has no
// copy.
func (g *grpcRemoteProvider) Fetch(ctx context.Context, id models.StateID) (*models.RemoteState, error) {
	var state models.RemoteState
	err := g.invoke(ctx, utils.RemoteStatesFetch, &models.StateRequest{ID: id}, &state)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch call: %w", err)
	}
	return &state, nil
}

// Push implements [RemoteProvider].
func (g *grpcRemoteProvider) Push(ctx context.Context, id models.StateID, state models.StoredState) (uint64, error) {
	var resp models.VersionResponse
	if err := g.invoke(ctx, utils.RemoteStatesPush, &models.PushStateRequest{ID: id, State: state}, &resp); err != nil {
		return 0, fmt.Errorf("push call: %w", err)
	}
	return resp.Version, nil
}

// Delete implements [RemoteProvider].
func (g *grpcRemoteProvider) Delete(ctx context.Context, id models.StateID) (bool, error) {
	var resp models.DeleteResponse
	if err := g.invoke(ctx, utils.RemoteStatesDelete, &models.StateRequest{ID: id}, &resp); err != nil {
		return false, fmt.Errorf("delete call: %w", err)
	}
	return resp.Deleted, nil
}

// List implements [RemoteProvider].
func (g *grpcRemoteProvider) List(ctx context.Context) ([]models.StateID, error) {
	var resp models.ListStatesResponse
	if err := g.invoke(ctx, utils.RemoteStatesList, &models.ListStatesRequest{}, &resp); err != nil {
		return nil, fmt.Errorf("list call: %w", err)
	}
	return resp.IDs, nil
}

// GetVersion implements [RemoteProvider].
func (g *grpcRemoteProvider) GetVersion(ctx context.Context, id models.StateID) (uint64, bool, error) {
	var resp models.VersionResponse
	err := g.invoke(ctx, utils.RemoteStatesGetVersion, &models.StateRequest{ID: id}, &resp)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get version call: %w", err)
	}
	return resp.Version, true, nil
}

// Close releases the underlying connection.
func (g *grpcRemoteProvider) Close() error {
	return g.conn.Close()
}

func (g *grpcRemoteProvider) invoke(ctx context.Context, method string, req, resp any) error {
	if g.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, utils.GRPCAuthorizationKey, "Bearer "+g.token)
	}
	return mapGRPCError(g.conn.Invoke(ctx, utils.FullMethodName(method), req, resp))
}
