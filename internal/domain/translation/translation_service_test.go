package translation_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type mockTranslationRepo struct {
	created []*translation.Translation
}

func (m *mockTranslationRepo) Create(ctx context.Context, t *translation.Translation) error {
	m.created = append(m.created, t)
	return nil
}

func (m *mockTranslationRepo) ListByUser(ctx context.Context, userID uint, limit int) ([]*translation.Translation, error) {
	var out []*translation.Translation
	for _, t := range m.created {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type mockTranslationBackend struct {
	calls int
}

func (m *mockTranslationBackend) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.calls++
	return "translated:" + text, nil
}

func (m *mockTranslationBackend) DetectLanguage(ctx context.Context, text string) (*translation.DetectedLanguage, error) {
	return &translation.DetectedLanguage{Language: "hi", Confidence: 0.97}, nil
}

type mockTranslationCache struct {
	entries map[string]string
}

func newMockTranslationCache() *mockTranslationCache {
	return &mockTranslationCache{entries: make(map[string]string)}
}

func (m *mockTranslationCache) key(text, src, dst string) string { return text + "|" + src + "|" + dst }

func (m *mockTranslationCache) GetTranslation(ctx context.Context, text, sourceLang, targetLang string) (string, bool) {
	value, ok := m.entries[m.key(text, sourceLang, targetLang)]
	return value, ok
}

func (m *mockTranslationCache) StoreTranslation(ctx context.Context, text, sourceLang, targetLang, translated string) {
	m.entries[m.key(text, sourceLang, targetLang)] = translated
}

func TestTranslate_PersistsFreshAndSkipsCachedHistory(t *testing.T) {
	repo := &mockTranslationRepo{}
	backend := &mockTranslationBackend{}
	svc := translation.NewService(repo, backend, newMockTranslationCache(), zerolog.Nop())

	first, err := svc.Translate(context.Background(), 1, "hello", "en", "hi")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if first.Cached {
		t.Fatal("first call cannot be a cache hit")
	}
	if first.Translation.TranslatedText != "translated:hello" {
		t.Fatalf("unexpected translation %q", first.Translation.TranslatedText)
	}
	if len(repo.created) != 1 {
		t.Fatalf("fresh translation must be persisted, got %d records", len(repo.created))
	}

	second, err := svc.Translate(context.Background(), 1, "hello", "en", "hi")
	if err != nil {
		t.Fatalf("second translate: %v", err)
	}
	if !second.Cached {
		t.Fatal("repeat call must be served from cache")
	}
	if backend.calls != 1 {
		t.Fatalf("cache hit must not reach the backend, got %d calls", backend.calls)
	}
	// Cached results are not duplicated into history.
	if len(repo.created) != 1 {
		t.Fatalf("cache hit must not be persisted, got %d records", len(repo.created))
	}
}

func TestTranslate_Validation(t *testing.T) {
	svc := translation.NewService(&mockTranslationRepo{}, &mockTranslationBackend{}, newMockTranslationCache(), zerolog.Nop())

	if _, err := svc.Translate(context.Background(), 1, "   ", "en", "hi"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("blank text must fail validation, got %v", err)
	}
	if _, err := svc.Translate(context.Background(), 1, "hello", "", "hi"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("missing source language must fail validation, got %v", err)
	}
}

func TestDetect(t *testing.T) {
	svc := translation.NewService(&mockTranslationRepo{}, &mockTranslationBackend{}, newMockTranslationCache(), zerolog.Nop())

	detected, err := svc.Detect(context.Background(), "नमस्ते")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if detected.Language != "hi" {
		t.Fatalf("unexpected language %q", detected.Language)
	}

	if _, err := svc.Detect(context.Background(), " "); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("blank text must fail validation, got %v", err)
	}
}
