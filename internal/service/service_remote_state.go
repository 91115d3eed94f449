package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
)

type remoteStateService struct {
	repository store.RemoteStateRepository

	logger *logger.Logger
}

// NewRemoteStateService builds the server-side state service over repository.
func NewRemoteStateService(repository store.RemoteStateRepository, logger *logger.Logger) RemoteStateService {
	return &remoteStateService{
		repository: repository,
		logger:     logger,
	}
}

func (r *remoteStateService) Ping(ctx context.Context) error {
	return r.repository.Ping(ctx)
}

func (r *remoteStateService) Fetch(ctx context.Context, id models.StateID) (models.RemoteState, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return models.RemoteState{}, err
	}

	return r.repository.Get(ctx, owner, id)
}

// Push stores the payload of req. The content hash is recomputed here, so a
// client cannot make two different payloads look equal.
func (r *remoteStateService) Push(ctx context.Context, req models.PushStateRequest) (uint64, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return 0, err
	}

	hash := utils.ContentHash(req.State.Data)
	version, err := r.repository.Put(ctx, owner, req.ID, req.State.Data, hash, time.Now().UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("state_id", req.ID.String()).Msg("failed to store state")
		return 0, fmt.Errorf("store state %s: %w", req.ID, err)
	}

	return version, nil
}

func (r *remoteStateService) Delete(ctx context.Context, id models.StateID) (bool, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return false, err
	}

	return r.repository.Delete(ctx, owner, id)
}

func (r *remoteStateService) List(ctx context.Context, req models.ListStatesRequest) ([]models.StateID, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req.Owner = owner
	return r.repository.List(ctx, req)
}

func (r *remoteStateService) GetVersion(ctx context.Context, id models.StateID) (uint64, error) {
	owner, err := ownerFromContext(ctx)
	if err != nil {
		return 0, err
	}

	version, ok, err := r.repository.GetVersion(ctx, owner, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, store.ErrStateNotFound
	}
	return version, nil
}

func ownerFromContext(ctx context.Context) (string, error) {
	owner, ok := utils.GetOwnerFromContext(ctx)
	if !ok {
		return "", ErrNoOwner
	}
	return owner, nil
}
