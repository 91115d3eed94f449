package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-state-sync/internal/logger"
	"github.com/MKhiriev/go-state-sync/internal/utils"
)

// HashHeader carries the hex HMAC-SHA256 of the raw request body.
const HashHeader = "HashSHA256"

// verifyHashing rejects bodies whose HashSHA256 header is missing or wrong.
// It is a no-op when the server runs without a hash key.
func (h *Handler) verifyHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyHashing").Msg("failed to read request body")
			utils.WriteJSONError(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		signature := r.Header.Get(HashHeader)
		if signature == "" || !h.hasher.Verify(body, signature) {
			log.Warn().Str("func", "*Handler.verifyHashing").
				Str("hash from request", signature).
				Msg("hashes are not equal")
			utils.WriteJSONError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
