package dbschema

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{}, RefreshToken{})
}

type User struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PublicID     string    `gorm:"column:public_id;size:64;not null;uniqueIndex"`
	Name         string    `gorm:"column:name;size:255;not null"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	ShareEnabled *bool     `gorm:"column:share_enabled;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (User) TableName() string {
	return "users"
}

func NewSchemaUser(usr *user.User) *User {
	if usr == nil {
		return nil
	}

	shareEnabled := usr.ShareEnabled
	return &User{
		ID:           usr.ID,
		PublicID:     usr.PublicID,
		Name:         usr.Name,
		Email:        usr.Email,
		PasswordHash: usr.PasswordHash,
		ShareEnabled: &shareEnabled,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
	}
}

func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	shareEnabled := false
	if u.ShareEnabled != nil {
		shareEnabled = *u.ShareEnabled
	}

	return &user.User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		ShareEnabled: shareEnabled,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type RefreshToken struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Token     string    `gorm:"column:token;size:512;not null;uniqueIndex"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func NewSchemaRefreshToken(token *user.RefreshToken) *RefreshToken {
	if token == nil {
		return nil
	}
	return &RefreshToken{
		ID:        token.ID,
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
}

func (t *RefreshToken) EtoD() *user.RefreshToken {
	if t == nil {
		return nil
	}
	return &user.RefreshToken{
		ID:        t.ID,
		Token:     t.Token,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}
