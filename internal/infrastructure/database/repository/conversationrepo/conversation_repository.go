package conversationrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/dbschema"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"3b4c5d6e-7f80-491a-8b9c-adbecfd0e1f2",
		)
	}
	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ConversationGormRepository) FindOne(ctx context.Context, filter conversation.Filter) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := applyFilter(repo.db.GetTx(ctx).WithContext(ctx), filter).
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
			"failed to find conversation",
			err,
			"4c5d6e7f-8091-4a2b-9cad-becfd0e1f203",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) FindByFilter(ctx context.Context, filter conversation.Filter) ([]*conversation.Conversation, error) {
	var entities []dbschema.Conversation
	err := applyFilter(repo.db.GetTx(ctx).WithContext(ctx), filter).
		Order("last_message_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"5d6e7f80-91a2-4b3c-adbe-cfd0e1f20314",
		)
	}

	conversations := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		conversations = append(conversations, entities[i].EtoD())
	}
	return conversations, nil
}

func (repo *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation",
			err,
			"6e7f8091-a2b3-4c4d-becf-d0e1f2031425",
		)
	}
	return nil
}

func (repo *ConversationGormRepository) TouchLastMessage(ctx context.Context, id uint, at time.Time) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", at).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to touch conversation activity",
			err,
			"7f8091a2-b3c4-4d5e-cfd0-e1f203142536",
		)
	}
	return nil
}

func (repo *ConversationGormRepository) Delete(ctx context.Context, id uint) error {
	tx := repo.db.GetTx(ctx).WithContext(ctx)

	// Share links hang off the conversation and go with it.
	if err := tx.Where("conversation_id = ?", id).Delete(&dbschema.SharedLink{}).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation share links",
			err,
			"8091a2b3-c4d5-4e6f-d0e1-f20314253647",
		)
	}

	if err := tx.Where("id = ?", id).Delete(&dbschema.Conversation{}).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation",
			err,
			"91a2b3c4-d5e6-4f70-e1f2-031425364758",
		)
	}
	return nil
}

func (repo *ConversationGormRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	tx := repo.db.GetTx(ctx).WithContext(ctx)

	if err := tx.Where("user_id = ?", userID).Delete(&dbschema.SharedLink{}).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete user share links",
			err,
			"a2b3c4d5-e6f7-4081-f203-142536475869",
		)
	}

	result := tx.Where("user_id = ?", userID).Delete(&dbschema.Conversation{})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete user conversations",
			result.Error,
			"b3c4d5e6-f708-4192-0314-253647586979",
		)
	}
	return result.RowsAffected, nil
}

func applyFilter(tx *gorm.DB, filter conversation.Filter) *gorm.DB {
	if filter.ID != nil {
		tx = tx.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsShared != nil {
		tx = tx.Where("is_shared = ?", *filter.IsShared)
	}
	return tx
}
