package validators

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-state-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldOwner targets the owner a request is scoped to.
	FieldOwner = "owner"

	// FieldID targets the state id of a request.
	FieldID = "id"

	// FieldState targets the stored state carried by a push request,
	// validated with FieldData and FieldTier.
	FieldState = "state"

	// FieldData targets the serialized payload.
	FieldData = "data"

	// FieldTier targets the persistence tier. An empty tier is allowed.
	FieldTier = "tier"

	// FieldMetadataID targets the id inside the state metadata. It must be
	// empty or equal to the request id.
	FieldMetadataID = "metadata_id"

	FieldPrefix = "prefix"
	FieldLimit  = "limit"
)

// Limits enforced by StateValidator.
const (
	MaxStateIDLength = 512
	MaxStateSize     = 4 << 20
	MaxListLimit     = 10000
)

// StateValidator validates the requests of the remote state API.
//
// Supported values: models.StateID, models.StoredState,
// models.PushStateRequest and models.ListStatesRequest, by value or pointer.
type StateValidator struct{}

// NewStateValidator returns a Validator for remote state requests.
func NewStateValidator() Validator {
	return &StateValidator{}
}

// Validate dispatches on the dynamic type of obj. Without fields every
// field of the value is checked.
func (v *StateValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StateID:
		return validateStateID(value)
	case *models.StateID:
		return validateStateID(*value)

	case models.StoredState:
		return v.validateStoredState(ctx, value, fields...)
	case *models.StoredState:
		return v.validateStoredState(ctx, *value, fields...)

	case models.PushStateRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushStateRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.ListStatesRequest:
		return v.validateListRequest(ctx, value, fields...)
	case *models.ListStatesRequest:
		return v.validateListRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateStateID checks that id is usable as a URL path segment and an
// object key: non-empty, bounded, valid UTF-8 and free of control
// characters.
func validateStateID(id models.StateID) error {
	if id == "" {
		return ErrEmptyStateID
	}
	if len(id) > MaxStateIDLength {
		return ErrStateIDLength
	}
	if !utf8.ValidString(string(id)) {
		return ErrInvalidID
	}
	for _, r := range string(id) {
		if unicode.IsControl(r) {
			return ErrInvalidID
		}
	}
	return nil
}

func (v *StateValidator) validateStoredState(_ context.Context, state models.StoredState, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldData, FieldTier}
	}

	for _, f := range fields {
		switch f {
		case FieldData:
			if len(state.Data) > MaxStateSize {
				return ErrDataTooLarge
			}
		case FieldTier:
			if state.Metadata.Tier != "" && !state.Metadata.Tier.IsValid() {
				return ErrInvalidTier
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *StateValidator) validatePushRequest(ctx context.Context, req models.PushStateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwner, FieldID, FieldMetadataID, FieldState}
	}

	for _, f := range fields {
		switch f {
		case FieldOwner:
			if req.Owner == "" {
				return ErrEmptyOwner
			}
		case FieldID:
			if err := validateStateID(req.ID); err != nil {
				return err
			}
		case FieldMetadataID:
			if req.State.Metadata.ID != "" && req.State.Metadata.ID != req.ID {
				return ErrIDMismatch
			}
		case FieldState:
			if err := v.validateStoredState(ctx, req.State); err != nil {
				return fmt.Errorf("state %s: %w", req.ID, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *StateValidator) validateListRequest(_ context.Context, req models.ListStatesRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwner, FieldPrefix, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldOwner:
			if req.Owner == "" {
				return ErrEmptyOwner
			}
		case FieldPrefix:
			if len(req.Prefix) > MaxStateIDLength {
				return ErrPrefixLength
			}
		case FieldLimit:
			if req.Limit > MaxListLimit {
				return ErrInvalidLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
