package document

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/utils/idgen"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

const publicIDLength = 16

type Service struct {
	documents Repository
	backend   Backend
	logger    zerolog.Logger
}

func NewService(documents Repository, backend Backend, logger zerolog.Logger) *Service {
	return &Service{
		documents: documents,
		backend:   backend,
		logger:    logger.With().Str("component", "document-service").Logger(),
	}
}

// Generate renders a template through the backend and stores the result.
func (s *Service) Generate(ctx context.Context, userID uint, templateName string, data map[string]any) (*Document, error) {
	templateName = strings.TrimSpace(templateName)
	if templateName == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"template name is required",
			nil,
			"6e7f8091-a2b3-4c4d-5e6f-708192031425",
		)
	}

	generated, err := s.backend.GenerateDocument(ctx, templateName, data)
	if err != nil {
		return nil, err
	}

	publicID, err := idgen.GenerateSecureID("doc", publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate document ID",
			err,
			"7f8091a2-b3c4-4d5e-6f70-819203142536",
		)
	}

	doc := &Document{
		PublicID:     publicID,
		UserID:       userID,
		TemplateName: templateName,
		Data:         data,
		Content:      generated.Content,
		FileURL:      generated.FileURL,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("document_id", doc.PublicID).
		Str("template", templateName).
		Msg("document generated")
	return doc, nil
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]*Document, error) {
	return s.documents.ListByUser(ctx, userID)
}

// Get returns one document scoped to its owner.
func (s *Service) Get(ctx context.Context, userID uint, publicID string) (*Document, error) {
	doc, err := s.documents.FindOne(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"document not found",
			nil,
			"8091a2b3-c4d5-4e6f-7081-920314253647",
		)
	}
	return doc, nil
}

// Delete removes a document after an ownership check.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	doc, err := s.Get(ctx, userID, publicID)
	if err != nil {
		return err
	}
	return s.documents.Delete(ctx, doc.ID)
}
