package document_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type mockDocumentRepo struct {
	docs   []*document.Document
	nextID uint
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *document.Document) error {
	m.nextID++
	doc.ID = m.nextID
	m.docs = append(m.docs, doc)
	return nil
}

func (m *mockDocumentRepo) FindOne(ctx context.Context, userID uint, publicID string) (*document.Document, error) {
	for _, doc := range m.docs {
		if doc.UserID == userID && doc.PublicID == publicID {
			return doc, nil
		}
	}
	return nil, nil
}

func (m *mockDocumentRepo) ListByUser(ctx context.Context, userID uint) ([]*document.Document, error) {
	var out []*document.Document
	for _, doc := range m.docs {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *mockDocumentRepo) Delete(ctx context.Context, id uint) error {
	for i, doc := range m.docs {
		if doc.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

type mockDocumentBackend struct {
	calls int
}

func (m *mockDocumentBackend) GenerateDocument(ctx context.Context, templateName string, data map[string]any) (*document.GeneratedDocument, error) {
	m.calls++
	return &document.GeneratedDocument{Content: "rendered " + templateName}, nil
}

func TestGenerate_RendersAndPersists(t *testing.T) {
	repo := &mockDocumentRepo{}
	backend := &mockDocumentBackend{}
	svc := document.NewService(repo, backend, zerolog.Nop())

	doc, err := svc.Generate(context.Background(), 1, "rental-agreement", map[string]any{"tenant": "Asha"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Content != "rendered rental-agreement" {
		t.Fatalf("unexpected content %q", doc.Content)
	}
	if doc.PublicID == "" {
		t.Fatal("expected a public ID")
	}
	if len(repo.docs) != 1 {
		t.Fatalf("generated document must be persisted, got %d records", len(repo.docs))
	}
	if backend.calls != 1 {
		t.Fatalf("expected one backend call, got %d", backend.calls)
	}
}

func TestGenerate_RequiresTemplateName(t *testing.T) {
	svc := document.NewService(&mockDocumentRepo{}, &mockDocumentBackend{}, zerolog.Nop())

	_, err := svc.Generate(context.Background(), 1, "  ", nil)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("blank template name must fail validation, got %v", err)
	}
}

func TestGetAndDelete_ScopedToOwner(t *testing.T) {
	repo := &mockDocumentRepo{}
	svc := document.NewService(repo, &mockDocumentBackend{}, zerolog.Nop())

	doc, err := svc.Generate(context.Background(), 1, "nda", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.Get(context.Background(), 2, doc.PublicID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("foreign document must be NotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), 2, doc.PublicID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("foreign delete must be NotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), 1, doc.PublicID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, doc.PublicID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("deleted document must be NotFound, got %v", err)
	}
}
