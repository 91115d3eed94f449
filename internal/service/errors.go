package service

import "errors"

// Errors of the sync engine.
var (
	ErrProviderUnavailable           = errors.New("remote provider unavailable")
	ErrConflictNeedsManualResolution = errors.New("conflict requires manual resolution")
	ErrMergeNotImplemented           = errors.New("merge conflict resolution is not implemented")
	ErrStateNotFound                 = errors.New("state is not registered")
	ErrNoRemoteProvider              = errors.New("no remote provider configured")
	ErrCannotResolveWithFail         = errors.New("cannot resolve a conflict with the fail policy")
	ErrLocalStateMissing             = errors.New("local state is missing")
	ErrRemoteStateMissing            = errors.New("remote state is missing")
	ErrInvalidConflictResolution     = errors.New("invalid conflict resolution")
)

// Errors of the server side remote-state service.
var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrNoOwner                 = errors.New("no owner in context")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
