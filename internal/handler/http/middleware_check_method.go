// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-state-sync/internal/utils"
)

// notFound is installed as both the NotFound and the MethodNotAllowed
// handler of the router. A known path requested with an unsupported method
// gets the same JSON 404 as an unknown path, so clients cannot discover which
// routes exist.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
