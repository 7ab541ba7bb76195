package share

import (
	"context"
	"time"
)

// SharedLink grants unauthenticated read access to a conversation. The token
// is the whole capability: anyone holding it can view the conversation until
// the link expires, runs out of views, or sharing is switched off.
type SharedLink struct {
	ID             uint
	Token          string
	UserID         uint
	ConversationID uint
	ViewCount      int
	MaxViews       *int
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Expired reports whether the link's deadline has passed.
func (l *SharedLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// Exhausted reports whether the view budget is used up.
func (l *SharedLink) Exhausted() bool {
	return l.MaxViews != nil && l.ViewCount >= *l.MaxViews
}

type Repository interface {
	Create(ctx context.Context, link *SharedLink) error
	FindByToken(ctx context.Context, token string) (*SharedLink, error)
	FindByConversation(ctx context.Context, conversationID uint) (*SharedLink, error)
	// IncrementViewCount bumps the counter atomically in storage.
	IncrementViewCount(ctx context.Context, id uint) error
	DeleteByConversation(ctx context.Context, conversationID uint) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
