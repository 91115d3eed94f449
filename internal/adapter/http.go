package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-state-sync/internal/config"
	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/utils"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/go-resty/resty/v2"
)

// HashHeader carries the HMAC-SHA256 signature of a request body.
const HashHeader = "HashSHA256"

type httpRemoteProvider struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	token string

	logger *logger.Logger
}

// NewHTTPRemoteProvider constructs an HTTP/REST implementation of
// [RemoteProvider] talking to the sync server at adapterCfg.HTTPAddress.
//
// Every state request carries appCfg.Token as a bearer token. When
// appCfg.HashKey is set, pushed bodies are signed in the HashSHA256 header.
func NewHTTPRemoteProvider(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteProvider, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	provider := &httpRemoteProvider{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		token:  strings.TrimSpace(appCfg.Token),
		logger: logger,
	}
	if appCfg.HashKey != "" {
		provider.hasher = utils.NewHasher(appCfg.HashKey)
	}

	return provider, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Name implements [RemoteProvider].
func (h *httpRemoteProvider) Name() string {
	return "http"
}

// IsAvailable implements [RemoteProvider]. It calls GET /api/health and treats
// any transport error or non-2xx status as unavailable.
func (h *httpRemoteProvider) IsAvailable(ctx context.Context) bool {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		h.logger.Debug().Err(err).Str("func", "httpRemoteProvider.IsAvailable").Msg("health check failed")
		return false
	}
	return mapHTTPError(resp) == nil
}

// Fetch implements [RemoteProvider] with GET /api/states/{id}. A 404 means the
// remote has no copy.
func (h *httpRemoteProvider) Fetch(ctx context.Context, id models.StateID) (*models.RemoteState, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		Get("/api/states/{id}")
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var state models.RemoteState
	if err = json.Unmarshal(resp.Body(), &state); err != nil {
		return nil, fmt.Errorf("decode fetch response: %w", err)
	}
	return &state, nil
}

// Push implements [RemoteProvider] with PUT /api/states/{id}.
func (h *httpRemoteProvider) Push(ctx context.Context, id models.StateID, state models.StoredState) (uint64, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("encode push request: %w", err)
	}

	req := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.hasher != nil {
		req.SetHeader(HashHeader, h.hasher.Sign(body))
	}

	resp, err := req.Put("/api/states/{id}")
	if err != nil {
		return 0, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var vr models.VersionResponse
	if err = json.Unmarshal(resp.Body(), &vr); err != nil {
		return 0, fmt.Errorf("decode push response: %w", err)
	}
	return vr.Version, nil
}

// Delete implements [RemoteProvider] with DELETE /api/states/{id}.
func (h *httpRemoteProvider) Delete(ctx context.Context, id models.StateID) (bool, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		Delete("/api/states/{id}")
	if err != nil {
		return false, fmt.Errorf("delete request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	var dr models.DeleteResponse
	if err = json.Unmarshal(resp.Body(), &dr); err != nil {
		return false, fmt.Errorf("decode delete response: %w", err)
	}
	return dr.Deleted, nil
}

// List implements [RemoteProvider] with GET /api/states/.
func (h *httpRemoteProvider) List(ctx context.Context) ([]models.StateID, error) {
	resp, err := h.authedRequest(ctx).Get("/api/states/")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var lr models.ListStatesResponse
	if err = json.Unmarshal(resp.Body(), &lr); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return lr.IDs, nil
}

// GetVersion implements [RemoteProvider] with GET /api/states/{id}/version.
func (h *httpRemoteProvider) GetVersion(ctx context.Context, id models.StateID) (uint64, bool, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id.String()).
		Get("/api/states/{id}/version")
	if err != nil {
		return 0, false, fmt.Errorf("get version request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return 0, false, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, false, err
	}

	var vr models.VersionResponse
	if err = json.Unmarshal(resp.Body(), &vr); err != nil {
		return 0, false, fmt.Errorf("decode version response: %w", err)
	}
	return vr.Version, true, nil
}

func (h *httpRemoteProvider) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}
