package auth

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
)

// UserView is the public account projection.
type UserView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ShareEnabled bool      `json:"shareEnabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewUserView(usr *user.User) UserView {
	return UserView{
		ID:           usr.PublicID,
		Name:         usr.Name,
		Email:        usr.Email,
		ShareEnabled: usr.ShareEnabled,
		CreatedAt:    usr.CreatedAt,
	}
}

// AuthResponse is returned from register, login and refresh.
type AuthResponse struct {
	User             UserView  `json:"user"`
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

func NewAuthResponse(result *user.AuthResult) AuthResponse {
	return AuthResponse{
		User:             NewUserView(result.User),
		AccessToken:      result.AccessToken,
		AccessExpiresAt:  result.AccessExpiresAt,
		RefreshToken:     result.RefreshToken,
		RefreshExpiresAt: result.RefreshExpiresAt,
	}
}
