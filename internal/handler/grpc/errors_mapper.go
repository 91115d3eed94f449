package grpc

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodeMap = map[error]codes.Code{
	service.ErrInvalidDataProvided:     codes.InvalidArgument,
	service.ErrNoOwner:                 codes.Unauthenticated,
	service.ErrTokenIsExpiredOrInvalid: codes.Unauthenticated,

	store.ErrStateNotFound: codes.NotFound,
}

func codeFromError(err error) codes.Code {
	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return code
		}
	}
	if errors.Is(err, context.Canceled) {
		return codes.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return codes.DeadlineExceeded
	}
	return codes.Internal
}

// toStatus converts a service error into a gRPC status. Internal errors are
// logged and reported without details.
func toStatus(ctx context.Context, err error) error {
	code := codeFromError(err)
	if code == codes.Internal {
		logger.FromContext(ctx).Err(err).Msg("internal error")
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
