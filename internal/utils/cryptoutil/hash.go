package cryptoutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// cacheKeyHexLen is the number of hex characters kept from the digest.
// 16 hex chars (64 bits) keeps keys short while making accidental
// collisions between distinct payloads negligible.
const cacheKeyHexLen = 16

// HashPayload returns a short, deterministic fingerprint of v: the first 16
// hex characters of the SHA-256 digest of v's JSON encoding. Callers must
// pass structs (not maps) so the field order, and therefore the digest, is
// stable across processes.
func HashPayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:cacheKeyHexLen], nil
}
