package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/go-chi/chi/v5"
)

// stateIDFromPath returns the unescaped {id} URL parameter. Clients escape
// ids, so "a/b" arrives as "a%2Fb".
func stateIDFromPath(r *http.Request) (models.StateID, error) {
	raw := chi.URLParam(r, "id")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidStateID, err)
	}
	return models.StateID(id), nil
}

func (h *Handler) fetchState(w http.ResponseWriter, r *http.Request) {
	id, err := stateIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "bad state id")
		return
	}

	state, err := h.services.RemoteStateService.Fetch(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "error fetching state")
		return
	}

	_, _ = utils.WriteJSON(w, state, http.StatusOK)
}

func (h *Handler) pushState(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := stateIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "bad state id")
		return
	}

	var state models.StoredState
	if err = json.NewDecoder(r.Body).Decode(&state); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		utils.WriteJSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	version, err := h.services.RemoteStateService.Push(r.Context(), models.PushStateRequest{ID: id, State: state})
	if err != nil {
		writeError(w, r, err, "error pushing state")
		return
	}

	log.Debug().Str("state_id", id.String()).Uint64("version", version).Msg("state pushed")
	_, _ = utils.WriteJSON(w, models.VersionResponse{Version: version}, http.StatusOK)
}

func (h *Handler) deleteState(w http.ResponseWriter, r *http.Request) {
	id, err := stateIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "bad state id")
		return
	}

	deleted, err := h.services.RemoteStateService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "error deleting state")
		return
	}

	_, _ = utils.WriteJSON(w, models.DeleteResponse{Deleted: deleted}, http.StatusOK)
}

func (h *Handler) getStateVersion(w http.ResponseWriter, r *http.Request) {
	id, err := stateIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "bad state id")
		return
	}

	version, err := h.services.RemoteStateService.GetVersion(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "error getting state version")
		return
	}

	_, _ = utils.WriteJSON(w, models.VersionResponse{Version: version}, http.StatusOK)
}

// listStates serves GET /api/states/?prefix=&limit=.
func (h *Handler) listStates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := models.ListStatesRequest{Prefix: query.Get("prefix")}

	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 64)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit: %w", ErrInvalidQuery, err), "bad limit")
			return
		}
		req.Limit = limit
	}

	ids, err := h.services.RemoteStateService.List(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "error listing states")
		return
	}
	if ids == nil {
		ids = []models.StateID{}
	}

	_, _ = utils.WriteJSON(w, models.ListStatesResponse{IDs: ids, Length: len(ids)}, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.RemoteStateService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("storage is unreachable")
		_, _ = utils.WriteJSON(w, models.HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, models.HealthResponse{Status: "ok"}, http.StatusOK)
}
