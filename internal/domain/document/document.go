package document

import (
	"context"
	"time"
)

// Document is a generated legal document owned by a user.
type Document struct {
	ID           uint
	PublicID     string
	UserID       uint
	TemplateName string
	Data         map[string]any
	Content      string
	FileURL      string
	CreatedAt    time.Time
}

type Repository interface {
	Create(ctx context.Context, doc *Document) error
	FindOne(ctx context.Context, userID uint, publicID string) (*Document, error)
	ListByUser(ctx context.Context, userID uint) ([]*Document, error)
	Delete(ctx context.Context, id uint) error
}

// GeneratedDocument is the backend's rendering result. Either Content or
// FileURL is set depending on the template.
type GeneratedDocument struct {
	Content string
	FileURL string
}

// Backend is the inference-service surface for document generation.
type Backend interface {
	GenerateDocument(ctx context.Context, templateName string, data map[string]any) (*GeneratedDocument, error)
}
