package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns a prefixed identifier of the form "<prefix>_<random>"
// where the random part is `length` characters drawn from [a-z0-9] using
// crypto/rand. Used for the public-facing IDs of conversations, messages,
// documents and translations.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("idgen: prefix must not be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	suffix := make([]byte, length)
	max := big.NewInt(int64(len(idCharset)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random: %w", err)
		}
		suffix[i] = idCharset[n.Int64()]
	}

	return prefix + "_" + string(suffix), nil
}

// MustGenerateSecureID is GenerateSecureID for call sites where a failing
// system CSPRNG is unrecoverable anyway.
func MustGenerateSecureID(prefix string, length int) string {
	id, err := GenerateSecureID(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}
