package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-state-sync/internal/validators"
	"github.com/MKhiriev/go-state-sync/models"
)

// RemoteStateValidationService rejects malformed requests before they reach
// the wrapped RemoteStateService. Validation errors wrap
// ErrInvalidDataProvided. The owner is checked by the inner service.
type RemoteStateValidationService struct {
	inner     RemoteStateService
	validator validators.Validator
}

func NewRemoteStateValidationService() RemoteStateServiceWrapper {
	return &RemoteStateValidationService{
		validator: validators.NewStateValidator(),
	}
}

func (v *RemoteStateValidationService) Ping(ctx context.Context) error {
	return v.inner.Ping(ctx)
}

func (v *RemoteStateValidationService) Fetch(ctx context.Context, id models.StateID) (models.RemoteState, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return models.RemoteState{}, invalid(err)
	}
	return v.inner.Fetch(ctx, id)
}

func (v *RemoteStateValidationService) Push(ctx context.Context, req models.PushStateRequest) (uint64, error) {
	if err := v.validator.Validate(ctx, req, validators.FieldID, validators.FieldMetadataID, validators.FieldState); err != nil {
		return 0, invalid(err)
	}
	return v.inner.Push(ctx, req)
}

func (v *RemoteStateValidationService) Delete(ctx context.Context, id models.StateID) (bool, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return false, invalid(err)
	}
	return v.inner.Delete(ctx, id)
}

func (v *RemoteStateValidationService) List(ctx context.Context, req models.ListStatesRequest) ([]models.StateID, error) {
	if err := v.validator.Validate(ctx, req, validators.FieldPrefix, validators.FieldLimit); err != nil {
		return nil, invalid(err)
	}
	return v.inner.List(ctx, req)
}

func (v *RemoteStateValidationService) GetVersion(ctx context.Context, id models.StateID) (uint64, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return 0, invalid(err)
	}
	return v.inner.GetVersion(ctx, id)
}

func (v *RemoteStateValidationService) Wrap(inner RemoteStateService) RemoteStateService {
	v.inner = inner
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
