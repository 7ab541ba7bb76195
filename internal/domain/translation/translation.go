package translation

import (
	"context"
	"time"
)

// Translation is one persisted translation request.
type Translation struct {
	ID             uint
	PublicID       string
	UserID         uint
	SourceText     string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	CreatedAt      time.Time
}

type Repository interface {
	Create(ctx context.Context, t *Translation) error
	// ListByUser returns the most recent translations first.
	ListByUser(ctx context.Context, userID uint, limit int) ([]*Translation, error)
}

// Backend is the inference-service surface for translation workloads.
type Backend interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	DetectLanguage(ctx context.Context, text string) (*DetectedLanguage, error)
}

// DetectedLanguage is the backend's language guess.
type DetectedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Cache holds finished translations keyed by (text, source, target).
type Cache interface {
	GetTranslation(ctx context.Context, text, sourceLang, targetLang string) (string, bool)
	StoreTranslation(ctx context.Context, text, sourceLang, targetLang, translated string)
}
