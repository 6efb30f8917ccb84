package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"sync"

	"github.com/MKhiriev/go-notes-sync/models"
)

// hasherPool holds HMAC-SHA256 instances keyed with the service secret.
// Must be initialized via InitHasherPool before Hash or HashActions is used.
var hasherPool sync.Pool

// InitHasherPool (re)initializes the pool of HMAC-SHA256 hashers used by
// the task service to verify batch integrity hashes. Every hasher is keyed
// with hashKey.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes the HMAC-SHA256 digest of data with a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashActions returns the hex digest of the JSON encoding of actions using
// the pooled hashers. It is the server side counterpart of [BatchHash].
func HashActions(actions []models.Action) (string, error) {
	payload, err := json.Marshal(actions)
	if err != nil {
		return "", fmt.Errorf("marshal actions: %w", err)
	}
	return hex.EncodeToString(Hash(payload)), nil
}

// BatchHash returns the integrity hash a client attaches to a batch: the
// hex HMAC-SHA256 of the JSON encoded action list keyed with the account
// secret.
func BatchHash(actions []models.Action, secret string) (string, error) {
	payload, err := json.Marshal(actions)
	if err != nil {
		return "", fmt.Errorf("marshal actions: %w", err)
	}
	return HashString(string(payload), secret), nil
}

// HashString computes the hex HMAC-SHA256 of data keyed with hashKey.
// It does not touch the pool.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// EqualHash compares two hex digests in constant time.
func EqualHash(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
