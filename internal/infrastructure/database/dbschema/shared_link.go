package dbschema

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(SharedLink{})
}

type SharedLink struct {
	ID             uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Token          string     `gorm:"column:token;size:128;not null;uniqueIndex"`
	UserID         uint       `gorm:"column:user_id;not null;index"`
	ConversationID uint       `gorm:"column:conversation_id;not null;index"`
	ViewCount      int        `gorm:"column:view_count;not null;default:0"`
	MaxViews       *int       `gorm:"column:max_views"`
	ExpiresAt      *time.Time `gorm:"column:expires_at;index"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;not null"`
}

func (SharedLink) TableName() string {
	return "shared_links"
}

func NewSchemaSharedLink(link *share.SharedLink) *SharedLink {
	if link == nil {
		return nil
	}
	return &SharedLink{
		ID:             link.ID,
		Token:          link.Token,
		UserID:         link.UserID,
		ConversationID: link.ConversationID,
		ViewCount:      link.ViewCount,
		MaxViews:       link.MaxViews,
		ExpiresAt:      link.ExpiresAt,
		CreatedAt:      link.CreatedAt,
		UpdatedAt:      link.UpdatedAt,
	}
}

func (l *SharedLink) EtoD() *share.SharedLink {
	if l == nil {
		return nil
	}
	return &share.SharedLink{
		ID:             l.ID,
		Token:          l.Token,
		UserID:         l.UserID,
		ConversationID: l.ConversationID,
		ViewCount:      l.ViewCount,
		MaxViews:       l.MaxViews,
		ExpiresAt:      l.ExpiresAt,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
