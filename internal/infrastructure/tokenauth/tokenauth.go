// Package tokenauth signs and verifies the HS256 access/refresh token pair.
// The two token kinds use distinct secrets so an access token can never pass
// as a refresh token or vice versa.
package tokenauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
)

const issuer = "legalai-backend"

// Claims is the JWT payload for both token kinds.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

var _ user.TokenIssuer = (*Manager)(nil)

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

func (m *Manager) IssueAccessToken(usr *user.User) (string, time.Time, error) {
	return m.sign(usr, m.accessSecret, m.accessTTL, true)
}

func (m *Manager) IssueRefreshToken(usr *user.User) (string, time.Time, error) {
	return m.sign(usr, m.refreshSecret, m.refreshTTL, false)
}

// VerifyAccessToken validates an access token and returns its claims.
func (m *Manager) VerifyAccessToken(token string) (*Claims, error) {
	return m.verify(token, m.accessSecret)
}

func (m *Manager) VerifyRefreshToken(token string) (string, error) {
	claims, err := m.verify(token, m.refreshSecret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (m *Manager) sign(usr *user.User, secret []byte, ttl time.Duration, withEmail bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   usr.PublicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if withEmail {
		claims.Email = usr.Email
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("tokenauth: sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (m *Manager) verify(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("tokenauth: unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("tokenauth: invalid token claims")
	}
	return claims, nil
}
