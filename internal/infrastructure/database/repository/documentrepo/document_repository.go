package documentrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/dbschema"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type DocumentGormRepository struct {
	db *transaction.Database
}

var _ document.Repository = (*DocumentGormRepository)(nil)

func NewDocumentGormRepository(db *transaction.Database) document.Repository {
	return &DocumentGormRepository{db: db}
}

func (repo *DocumentGormRepository) Create(ctx context.Context, doc *document.Document) error {
	entity, err := dbschema.NewSchemaDocument(doc)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to encode document",
			err,
			"91a2b3c4-d5e6-4f70-e0f1-021324354657",
		)
	}

	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create document",
			err,
			"a2b3c4d5-e6f7-4081-f102-132435465768",
		)
	}
	doc.ID = entity.ID
	doc.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *DocumentGormRepository) FindOne(ctx context.Context, userID uint, publicID string) (*document.Document, error) {
	var entity dbschema.Document
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find document",
			err,
			"b3c4d5e6-f708-4192-0213-243546576879",
		)
	}
	return entity.EtoD()
}

func (repo *DocumentGormRepository) ListByUser(ctx context.Context, userID uint) ([]*document.Document, error) {
	var entities []dbschema.Document
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list documents",
			err,
			"c4d5e6f7-0819-42a3-1324-35465768798a",
		)
	}

	documents := make([]*document.Document, 0, len(entities))
	for i := range entities {
		doc, err := entities[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to decode document",
				err,
				"d5e6f708-192a-43b4-2435-465768798a9b",
			)
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

func (repo *DocumentGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Document{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete document",
			err,
			"e6f70819-2a3b-44c5-3546-5768798a9bac",
		)
	}
	return nil
}
