package share

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// tokenByteLength sized so tokens are infeasible to guess.
	tokenByteLength = 16
	// MaxTokenRetries bounds collision re-rolls on creation.
	MaxTokenRetries = 5
	// minTokenHexLength is the shortest token ever issued (8 random bytes).
	minTokenHexLength = 16
)

// TokenGenerator mints unique share tokens.
type TokenGenerator struct {
	links Repository
}

func NewTokenGenerator(links Repository) *TokenGenerator {
	return &TokenGenerator{links: links}
}

// GenerateUniqueToken returns a hex token not yet present in storage.
func (g *TokenGenerator) GenerateUniqueToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < MaxTokenRetries; attempt++ {
		token, err := newToken()
		if err != nil {
			return "", err
		}

		existing, err := g.links.FindByToken(ctx, token)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return token, nil
		}
	}
	return "", fmt.Errorf("share: failed to generate unique token after %d attempts", MaxTokenRetries)
}

// ValidateToken reports whether a candidate looks like an issued token. Used
// to reject junk before touching storage.
func ValidateToken(token string) bool {
	if len(token) < minTokenHexLength || len(token)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("share: read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
