package share

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
)

// SharedLinkView is returned to the owner when sharing is enabled.
type SharedLinkView struct {
	Token     string     `json:"token"`
	ViewCount int        `json:"viewCount"`
	MaxViews  *int       `json:"maxViews,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func NewSharedLinkView(link *share.SharedLink) SharedLinkView {
	return SharedLinkView{
		Token:     link.Token,
		ViewCount: link.ViewCount,
		MaxViews:  link.MaxViews,
		ExpiresAt: link.ExpiresAt,
		CreatedAt: link.CreatedAt,
	}
}
