package share

import "time"

// EnableShareRequest bounds the lifetime of a new share link. Both fields
// are optional; they are ignored when a link already exists.
type EnableShareRequest struct {
	MaxViews  *int       `json:"maxViews" binding:"omitempty,min=1"`
	ExpiresAt *time.Time `json:"expiresAt" binding:"omitempty"`
}
