// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated means the server config names neither an HTTP
	// nor a gRPC address.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errHTTPHandlerFailed wraps failures of the HTTP handler constructor,
	// such as metrics already registered on the registry.
	errHTTPHandlerFailed = errors.New("http handler creation failed")
)
