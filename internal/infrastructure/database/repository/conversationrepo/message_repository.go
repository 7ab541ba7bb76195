package conversationrepo

import (
	"context"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/dbschema"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database/transaction"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type MessageGormRepository struct {
	db *transaction.Database
}

var _ conversation.MessageRepository = (*MessageGormRepository)(nil)

func NewMessageGormRepository(db *transaction.Database) conversation.MessageRepository {
	return &MessageGormRepository{db: db}
}

func (repo *MessageGormRepository) Create(ctx context.Context, msg *conversation.Message) error {
	entity, err := dbschema.NewSchemaMessage(msg)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to encode message",
			err,
			"c4d5e6f7-0819-42a3-1425-36475869798a",
		)
	}

	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"d5e6f708-192a-43b4-2536-475869798a9b",
		)
	}
	msg.ID = entity.ID
	msg.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *MessageGormRepository) ListByConversation(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var entities []dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"e6f70819-2a3b-44c5-3647-5869798a9bac",
		)
	}

	messages := make([]*conversation.Message, 0, len(entities))
	for i := range entities {
		msg, err := entities[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to decode message",
				err,
				"f708192a-3b4c-45d6-4758-69798a9bacbd",
			)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (repo *MessageGormRepository) LatestByConversations(ctx context.Context, conversationIDs []uint) (map[uint]*conversation.Message, error) {
	latest := make(map[uint]*conversation.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return latest, nil
	}

	// Messages are immutable and IDs monotonic, so the newest message per
	// conversation is the one with the highest ID.
	sub := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Message{}).
		Select("MAX(id)").
		Where("conversation_id IN ?", conversationIDs).
		Group("conversation_id")

	var entities []dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id IN (?)", sub).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to load latest messages",
			err,
			"192a3b4c-5d6e-47f8-5968-7a8b9cadbece",
		)
	}

	for i := range entities {
		msg, err := entities[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to decode message",
				err,
				"2a3b4c5d-6e7f-4809-6a79-8b9cadbecedf",
			)
		}
		latest[msg.ConversationID] = msg
	}
	return latest, nil
}

func (repo *MessageGormRepository) DeleteByConversation(ctx context.Context, conversationID uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&dbschema.Message{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation messages",
			err,
			"08192a3b-4c5d-46e7-5869-798a9bacbdce",
		)
	}
	return nil
}
