package user

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnuGuin/LegalAI-Backend/internal/utils/idgen"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

const publicIDLength = 16

// AuthResult carries a signed-in user together with a fresh token pair.
type AuthResult struct {
	User             *User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type Service struct {
	users         Repository
	refreshTokens RefreshTokenRepository
	tokens        TokenIssuer
	cache         Cache
	logger        zerolog.Logger
}

func NewService(
	users Repository,
	refreshTokens RefreshTokenRepository,
	tokens TokenIssuer,
	cache Cache,
	logger zerolog.Logger,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		cache:         cache,
		logger:        logger.With().Str("component", "user-service").Logger(),
	}
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict,
			"an account with this email already exists",
			nil,
			"1d4c9e0a-7b31-4c2f-9d65-3a8e2f1b5c04",
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to hash password",
			err,
			"5f2e8b1c-9a04-4d37-8c6e-1b7d3a9f0e52",
		)
	}

	publicID, err := idgen.GenerateSecureID("user", publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate user ID",
			err,
			"c3a1f6d9-2e85-470b-b4c7-8d9e0f1a2b63",
		)
	}

	usr := &User{
		PublicID:     publicID,
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		ShareEnabled: true,
	}
	if err := s.users.Create(ctx, usr); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", usr.PublicID).Msg("user registered")
	return s.issueTokens(ctx, usr)
}

// Login verifies credentials and signs the user in.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	usr, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if usr == nil || bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		// Same error for unknown email and wrong password.
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized,
			"invalid email or password",
			nil,
			"9b8c7d6e-5f4a-4321-8e9d-0c1b2a3f4e5d",
		)
	}

	return s.issueTokens(ctx, usr)
}

// Refresh rotates a refresh token and returns a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	publicID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized,
			"invalid refresh token",
			err,
			"7e6d5c4b-3a29-4180-9f8e-7d6c5b4a3928",
		)
	}

	stored, err := s.refreshTokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized,
			"refresh token revoked or expired",
			nil,
			"2f1e0d9c-8b7a-4655-9443-3221100ffeed",
		)
	}

	usr, err := s.users.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if usr == nil || usr.ID != stored.UserID {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized,
			"refresh token does not match any account",
			nil,
			"6a5b4c3d-2e1f-4099-8877-665544332211",
		)
	}

	// Rotation: the presented token is consumed before a new pair is issued.
	if err := s.refreshTokens.DeleteByToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, usr)
}

// Logout revokes every refresh token of the user and drops their cache entries.
func (s *Service) Logout(ctx context.Context, userID uint) error {
	if err := s.refreshTokens.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.cache.InvalidateUser(ctx, userID)
	return nil
}

// GetByPublicID loads a user by their external identifier.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	usr, err := s.users.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"user not found",
			nil,
			"0a9b8c7d-6e5f-4433-2211-ffeeddccbbaa",
		)
	}
	return usr, nil
}

func (s *Service) issueTokens(ctx context.Context, usr *User) (*AuthResult, error) {
	accessToken, accessExp, err := s.tokens.IssueAccessToken(usr)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to sign access token",
			err,
			"4d3c2b1a-0f9e-4877-6655-443322110099",
		)
	}

	refreshToken, refreshExp, err := s.tokens.IssueRefreshToken(usr)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to sign refresh token",
			err,
			"8c7d6e5f-4a3b-4211-0099-887766554433",
		)
	}

	if err := s.refreshTokens.Create(ctx, &RefreshToken{
		Token:     refreshToken,
		UserID:    usr.ID,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:             usr,
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}
