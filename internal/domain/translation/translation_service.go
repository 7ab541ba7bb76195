package translation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/utils/idgen"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

const (
	publicIDLength = 16
	historyLimit   = 50
)

type Service struct {
	translations Repository
	backend      Backend
	cache        Cache
	logger       zerolog.Logger
}

func NewService(translations Repository, backend Backend, cache Cache, logger zerolog.Logger) *Service {
	return &Service{
		translations: translations,
		backend:      backend,
		cache:        cache,
		logger:       logger.With().Str("component", "translation-service").Logger(),
	}
}

// Result carries a translation plus whether it was served from cache.
type Result struct {
	Translation *Translation
	Cached      bool
}

// Translate returns the translated text, consulting the cache before the
// backend. Only fresh translations are persisted to history.
func (s *Service) Translate(ctx context.Context, userID uint, text, sourceLang, targetLang string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"text is required",
			nil,
			"2a3b4c5d-6e7f-4809-1a2b-3c4d5e6f7081",
		)
	}
	if sourceLang == "" || targetLang == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"source and target languages are required",
			nil,
			"3b4c5d6e-7f80-491a-2b3c-4d5e6f708192",
		)
	}

	if translated, ok := s.cache.GetTranslation(ctx, text, sourceLang, targetLang); ok {
		return &Result{
			Translation: &Translation{
				UserID:         userID,
				SourceText:     text,
				TranslatedText: translated,
				SourceLang:     sourceLang,
				TargetLang:     targetLang,
			},
			Cached: true,
		}, nil
	}

	translated, err := s.backend.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}

	publicID, err := idgen.GenerateSecureID("trl", publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate translation ID",
			err,
			"4c5d6e7f-8091-4a2b-3c4d-5e6f70819203",
		)
	}

	record := &Translation{
		PublicID:       publicID,
		UserID:         userID,
		SourceText:     text,
		TranslatedText: translated,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
	}
	if err := s.translations.Create(ctx, record); err != nil {
		return nil, err
	}

	s.cache.StoreTranslation(ctx, text, sourceLang, targetLang, translated)
	return &Result{Translation: record}, nil
}

// Detect proxies language detection to the backend.
func (s *Service) Detect(ctx context.Context, text string) (*DetectedLanguage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"text is required",
			nil,
			"5d6e7f80-91a2-4b3c-4d5e-6f7081920314",
		)
	}
	return s.backend.DetectLanguage(ctx, text)
}

// History returns the user's most recent translations.
func (s *Service) History(ctx context.Context, userID uint) ([]*Translation, error) {
	return s.translations.ListByUser(ctx, userID, historyLimit)
}
