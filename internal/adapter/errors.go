package adapter

import "errors"

// Errors reported by remote providers. Transport specific failures are
// wrapped around one of these values.
var (
	ErrUnavailable         = errors.New("remote unavailable")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	ErrUnknownAdapterKind = errors.New("unknown adapter kind")
	ErrInvalidAddress     = errors.New("invalid remote address")
)
