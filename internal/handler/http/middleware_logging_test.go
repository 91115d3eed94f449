package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithLogger кладёт логгер в контекст так же, как withTraceID.
func requestWithLogger(method, target string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		status     int
		body       string
		wantStatus float64
		wantSize   float64
	}{
		{name: "GET 200", method: http.MethodGet, target: "/api/states/doc1", status: http.StatusOK, body: "OK", wantStatus: 200, wantSize: 2},
		{name: "PUT 400", method: http.MethodPut, target: "/api/states/doc1", status: http.StatusBadRequest, body: "bad", wantStatus: 400, wantSize: 3},
		{name: "no body", method: http.MethodDelete, target: "/api/states/doc1", status: http.StatusNoContent, wantStatus: 204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			rr := serve(h.withLogging(next), requestWithLogger(tt.method, tt.target, &buf))
			assert.Equal(t, tt.status, rr.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.target, entry["uri"])
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.Equal(t, tt.wantSize, entry["size"])
			assert.Contains(t, entry, "duration")
		})
	}
}

func TestWithLogging_NoLoggerInContext(t *testing.T) {
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	assert.NotPanics(t, func() {
		serve(h.withLogging(next), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestWithLogging_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	serve(h.withLogging(next), requestWithLogger(http.MethodGet, "/api/health", &buf))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}
