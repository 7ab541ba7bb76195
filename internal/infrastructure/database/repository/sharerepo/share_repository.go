package sharerepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/share"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/dbschema"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type ShareGormRepository struct {
	db *transaction.Database
}

var _ share.Repository = (*ShareGormRepository)(nil)

func NewShareGormRepository(db *transaction.Database) share.Repository {
	return &ShareGormRepository{db: db}
}

func (repo *ShareGormRepository) Create(ctx context.Context, link *share.SharedLink) error {
	entity := dbschema.NewSchemaSharedLink(link)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create shared link",
			err,
			"192a3b4c-5d6e-47f8-6979-8a9bacbdcedf",
		)
	}
	link.ID = entity.ID
	link.CreatedAt = entity.CreatedAt
	link.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ShareGormRepository) FindByToken(ctx context.Context, token string) (*share.SharedLink, error) {
	var entity dbschema.SharedLink
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("token = ?", token).
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
			"failed to find shared link by token",
			err,
			"2a3b4c5d-6e7f-4809-798a-9bacbdcedfe0",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ShareGormRepository) FindByConversation(ctx context.Context, conversationID uint) (*share.SharedLink, error) {
	var entity dbschema.SharedLink
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
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
			"failed to find shared link by conversation",
			err,
			"3b4c5d6e-7f80-491a-8a9b-acbdcedfe0f1",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ShareGormRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.SharedLink{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to increment view count",
			err,
			"4c5d6e7f-8091-4a2b-9bac-bdcedfe0f102",
		)
	}
	return nil
}

func (repo *ShareGormRepository) DeleteByConversation(ctx context.Context, conversationID uint) (int64, error) {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&dbschema.SharedLink{})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete shared links",
			result.Error,
			"5d6e7f80-91a2-4b3c-acbd-cedfe0f10213",
		)
	}
	return result.RowsAffected, nil
}

func (repo *ShareGormRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", before).
		Delete(&dbschema.SharedLink{})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete expired shared links",
			result.Error,
			"6e7f8091-a2b3-4c4d-bdce-dfe0f1021324",
		)
	}
	return result.RowsAffected, nil
}
