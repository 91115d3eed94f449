package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 digest of a state payload. The value is
// stable across processes and platforms, so it can be persisted and compared
// with hashes computed by the remote side.
func ContentHash(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Hasher computes keyed HMAC-SHA256 signatures used for request integrity
// checks (the HashSHA256 header). Instances are safe for concurrent use.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey.
//
// HMAC instances are pooled to avoid an allocation per request:
//
//	h := utils.NewHasher("my-secret-key")
//	sig := h.Sign(body)
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Hash computes the raw HMAC-SHA256 digest of data.
func (h *Hasher) Hash(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// Sign returns the hex-encoded HMAC-SHA256 digest of data.
func (h *Hasher) Sign(data []byte) string {
	return hex.EncodeToString(h.Hash(data))
}

// Verify reports whether signature is the hex-encoded digest of data. The
// comparison runs in constant time.
func (h *Hasher) Verify(data []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(h.Hash(data), expected)
}

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. It does not use a pool and suits one-off hashing.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
