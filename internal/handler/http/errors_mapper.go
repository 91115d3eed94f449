package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/service"
	"github.com/MKhiriev/go-state-sync/internal/store"
	"github.com/MKhiriev/go-state-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrNoOwner:                 http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	ErrInvalidStateID:           http.StatusBadRequest,
	ErrInvalidQuery:             http.StatusBadRequest,
	ErrIntegrityCheckFailed:     http.StatusBadRequest,
	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,

	store.ErrStateNotFound:      http.StatusNotFound,
	store.ErrInvalidStoredState: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the mapped status. Server errors are
// reported with a generic message so storage details do not leak.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		utils.WriteJSONError(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Msg(msg)
	utils.WriteJSONError(w, err.Error(), status)
}
