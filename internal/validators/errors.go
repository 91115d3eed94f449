package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyOwner    = errors.New("owner is required")
	ErrEmptyStateID  = errors.New("state id is required")
	ErrStateIDLength = errors.New("state id is too long")
	ErrInvalidID     = errors.New("state id contains invalid characters")
	ErrDataTooLarge  = errors.New("state data is too large")
	ErrInvalidTier   = errors.New("invalid persistence tier")
	ErrIDMismatch    = errors.New("state metadata id does not match request id")
	ErrPrefixLength  = errors.New("prefix is too long")
	ErrInvalidLimit  = errors.New("invalid limit")
)
