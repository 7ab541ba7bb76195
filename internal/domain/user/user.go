package user

import (
	"context"
	"time"
)

// User is a registered account. PublicID is the external identifier used in
// tokens and API payloads; the numeric ID never leaves the service.
type User struct {
	ID           uint
	PublicID     string
	Name         string
	Email        string
	PasswordHash string
	ShareEnabled bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is a persisted, single-use refresh credential. Tokens are
// rotated on every refresh and removed on logout.
type RefreshToken struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, usr *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	Update(ctx context.Context, usr *User) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// TokenIssuer signs and verifies the access/refresh token pair.
type TokenIssuer interface {
	IssueAccessToken(usr *User) (token string, expiresAt time.Time, err error)
	IssueRefreshToken(usr *User) (token string, expiresAt time.Time, err error)
	VerifyRefreshToken(token string) (userPublicID string, err error)
}

// Cache covers the user-scoped cache entries the auth flow has to drop.
type Cache interface {
	InvalidateUser(ctx context.Context, userID uint)
}
