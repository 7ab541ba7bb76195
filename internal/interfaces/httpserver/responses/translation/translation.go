package translation

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/functional"
)

// TranslationView is one translation record.
type TranslationView struct {
	ID             string    `json:"id,omitempty"`
	SourceText     string    `json:"sourceText"`
	TranslatedText string    `json:"translatedText"`
	SourceLang     string    `json:"sourceLang"`
	TargetLang     string    `json:"targetLang"`
	Cached         bool      `json:"cached,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

func NewTranslationView(t *translation.Translation, cached bool) TranslationView {
	return TranslationView{
		ID:             t.PublicID,
		SourceText:     t.SourceText,
		TranslatedText: t.TranslatedText,
		SourceLang:     t.SourceLang,
		TargetLang:     t.TargetLang,
		Cached:         cached,
		CreatedAt:      t.CreatedAt,
	}
}

func NewTranslationViews(translations []*translation.Translation) []TranslationView {
	return functional.Map(translations, func(t *translation.Translation) TranslationView {
		return NewTranslationView(t, false)
	})
}
