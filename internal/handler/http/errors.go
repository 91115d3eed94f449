// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the HTTP layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header of a
	// pushed body is missing or does not match the body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrInvalidStateID is returned when the {id} path segment cannot be
	// unescaped.
	ErrInvalidStateID = errors.New("invalid state id in path")

	// ErrInvalidQuery is returned for malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query parameter")
)
