package translationrepo

import (
	"context"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/dbschema"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type TranslationGormRepository struct {
	db *transaction.Database
}

var _ translation.Repository = (*TranslationGormRepository)(nil)

func NewTranslationGormRepository(db *transaction.Database) translation.Repository {
	return &TranslationGormRepository{db: db}
}

func (repo *TranslationGormRepository) Create(ctx context.Context, t *translation.Translation) error {
	entity := dbschema.NewSchemaTranslation(t)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create translation",
			err,
			"7f8091a2-b3c4-4d5e-cedf-e0f102132435",
		)
	}
	t.ID = entity.ID
	t.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *TranslationGormRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*translation.Translation, error) {
	var entities []dbschema.Translation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list translations",
			err,
			"8091a2b3-c4d5-4e6f-dfe0-f10213243546",
		)
	}

	translations := make([]*translation.Translation, 0, len(entities))
	for i := range entities {
		translations = append(translations, entities[i].EtoD())
	}
	return translations, nil
}
