package client

import "errors"

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrStateNotFound   = errors.New("state not found")
	ErrInvalidTier     = errors.New("invalid persistence tier")
)
