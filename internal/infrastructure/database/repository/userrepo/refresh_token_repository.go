package userrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/dbschema"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type RefreshTokenGormRepository struct {
	db *transaction.Database
}

var _ user.RefreshTokenRepository = (*RefreshTokenGormRepository)(nil)

func NewRefreshTokenGormRepository(db *transaction.Database) user.RefreshTokenRepository {
	return &RefreshTokenGormRepository{db: db}
}

func (repo *RefreshTokenGormRepository) Create(ctx context.Context, token *user.RefreshToken) error {
	entity := dbschema.NewSchemaRefreshToken(token)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to store refresh token",
			err,
			"e6f70819-2a3b-44c5-3647-58697a8b9cad",
		)
	}
	token.ID = entity.ID
	token.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *RefreshTokenGormRepository) FindByToken(ctx context.Context, token string) (*user.RefreshToken, error) {
	var entity dbschema.RefreshToken
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
			"failed to find refresh token",
			err,
			"f708192a-3b4c-45d6-4758-697a8b9cadbe",
		)
	}
	return entity.EtoD(), nil
}

func (repo *RefreshTokenGormRepository) DeleteByToken(ctx context.Context, token string) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("token = ?", token).
		Delete(&dbschema.RefreshToken{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete refresh token",
			err,
			"08192a3b-4c5d-46e7-5869-7a8b9cadbecf",
		)
	}
	return nil
}

func (repo *RefreshTokenGormRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&dbschema.RefreshToken{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete user refresh tokens",
			err,
			"192a3b4c-5d6e-47f8-697a-8b9cadbecfd0",
		)
	}
	return nil
}

func (repo *RefreshTokenGormRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&dbschema.RefreshToken{})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete expired refresh tokens",
			result.Error,
			"2a3b4c5d-6e7f-4809-7a8b-9cadbecfd0e1",
		)
	}
	return result.RowsAffected, nil
}
