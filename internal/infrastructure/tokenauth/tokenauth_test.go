package tokenauth

import (
	"testing"
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/config"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    168 * time.Hour,
	})
}

func testUser() *user.User {
	return &user.User{ID: 1, PublicID: "user_abcdef12345678aa", Email: "a@example.com"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	token, expiresAt, err := mgr.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expiresAt) > 15*time.Minute || time.Until(expiresAt) < 14*time.Minute {
		t.Fatalf("unexpected access expiry %v", expiresAt)
	}

	claims, err := mgr.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user_abcdef12345678aa" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.Email != "a@example.com" {
		t.Fatalf("access tokens carry the email claim, got %q", claims.Email)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	mgr := newTestManager(t)

	token, _, err := mgr.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := mgr.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "user_abcdef12345678aa" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

func TestTokenKindsDoNotCross(t *testing.T) {
	mgr := newTestManager(t)

	access, _, err := mgr.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, _, err := mgr.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := mgr.VerifyRefreshToken(access); err == nil {
		t.Fatal("an access token must not verify as a refresh token")
	}
	if _, err := mgr.VerifyAccessToken(refresh); err == nil {
		t.Fatal("a refresh token must not verify as an access token")
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	mgr := NewManager(&config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenTTL:     -time.Minute,
		RefreshTokenTTL:    168 * time.Hour,
	})

	token, _, err := mgr.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := mgr.VerifyAccessToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestForeignIssuerIsRejected(t *testing.T) {
	mgr := newTestManager(t)
	other := NewManager(&config.Config{
		AccessTokenSecret:  "someone-elses-secret",
		RefreshTokenSecret: "someone-elses-refresh",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    168 * time.Hour,
	})

	token, _, err := other.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := mgr.VerifyAccessToken(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}
