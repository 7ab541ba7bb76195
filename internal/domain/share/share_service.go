package share

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

// Service implements conversation sharing: owners mint capability tokens,
// the public resolves them without authentication.
type Service struct {
	links         Repository
	conversations conversation.Repository
	messages      conversation.MessageRepository
	users         user.Repository
	tokens        *TokenGenerator
	logger        zerolog.Logger
}

func NewService(
	links Repository,
	conversations conversation.Repository,
	messages conversation.MessageRepository,
	users user.Repository,
	tokens *TokenGenerator,
	logger zerolog.Logger,
) *Service {
	return &Service{
		links:         links,
		conversations: conversations,
		messages:      messages,
		users:         users,
		tokens:        tokens,
		logger:        logger.With().Str("component", "share-service").Logger(),
	}
}

// Options bound the lifetime of a new share link. Ignored when a link
// already exists for the conversation.
type Options struct {
	MaxViews  *int
	ExpiresAt *time.Time
}

// Enable turns on sharing for a conversation and returns its link. The
// operation is idempotent: enabling an already-shared conversation returns
// the existing link with its token unchanged.
func (s *Service) Enable(ctx context.Context, userID uint, conversationPublicID string, opts Options) (*SharedLink, error) {
	conv, err := s.findOwned(ctx, userID, conversationPublicID)
	if err != nil {
		return nil, err
	}

	link, err := s.links.FindByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	if link == nil {
		token, err := s.tokens.GenerateUniqueToken(ctx)
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeInternal,
				"failed to generate share token",
				err,
				"f1e2d3c4-b5a6-4978-8a9b-0c1d2e3f4a5b",
			)
		}

		link = &SharedLink{
			Token:          token,
			UserID:         userID,
			ConversationID: conv.ID,
			MaxViews:       opts.MaxViews,
			ExpiresAt:      opts.ExpiresAt,
		}
		if err := s.links.Create(ctx, link); err != nil {
			return nil, err
		}
	}

	if !conv.IsShared {
		conv.IsShared = true
		if err := s.conversations.Update(ctx, conv); err != nil {
			return nil, err
		}
	}

	// Enabling any link re-enables sharing for the account as a whole.
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner != nil && !owner.ShareEnabled {
		owner.ShareEnabled = true
		if err := s.users.Update(ctx, owner); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("conversation_id", conv.PublicID).
		Msg("sharing enabled")
	return link, nil
}

// Disable revokes sharing for a conversation. Its links are hard-deleted,
// so previously issued tokens resolve to NotFound from now on.
func (s *Service) Disable(ctx context.Context, userID uint, conversationPublicID string) error {
	conv, err := s.findOwned(ctx, userID, conversationPublicID)
	if err != nil {
		return err
	}

	if _, err := s.links.DeleteByConversation(ctx, conv.ID); err != nil {
		return err
	}

	if conv.IsShared {
		conv.IsShared = false
		if err := s.conversations.Update(ctx, conv); err != nil {
			return err
		}
	}

	s.logger.Info().
		Str("conversation_id", conv.PublicID).
		Msg("sharing disabled")
	return nil
}

// SharedMessage is one turn of a shared conversation, stripped to what the
// public may see: its public id, role, content, attachments and timestamp.
type SharedMessage struct {
	ID          string            `json:"id"`
	Role        conversation.Role `json:"role"`
	Content     string            `json:"content"`
	Attachments []string          `json:"attachments,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// SharedConversation is the public projection returned for a valid token.
// It carries no internal identifiers and nothing about the owner beyond
// their display name.
type SharedConversation struct {
	Title     string            `json:"title"`
	Mode      conversation.Mode `json:"mode"`
	OwnerName string            `json:"ownerName"`
	SharedAt  time.Time         `json:"sharedAt"`
	Messages  []SharedMessage   `json:"messages"`
}

// Resolve validates a share token and returns the conversation projection.
// Checks run in a fixed order so each failure mode maps to a stable error:
// unknown token, owner sharing disabled, conversation gone, sharing revoked,
// link expired, view budget exhausted.
func (s *Service) Resolve(ctx context.Context, token string) (*SharedConversation, error) {
	if !ValidateToken(token) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"shared conversation not found",
			nil,
			"a1b2c3d4-e5f6-4071-8293-a4b5c6d7e8f9",
		)
	}

	link, err := s.links.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"shared conversation not found",
			nil,
			"b2c3d4e5-f607-4182-93a4-b5c6d7e8f90a",
		)
	}

	owner, err := s.users.FindByID(ctx, link.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil || !owner.ShareEnabled {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"sharing is disabled for this account",
			nil,
			"c3d4e5f6-0718-4293-a4b5-c6d7e8f90a1b",
		)
	}

	linkConvID := link.ConversationID
	conv, err := s.conversations.FindOne(ctx, conversation.Filter{ID: &linkConvID})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"shared conversation not found",
			nil,
			"d4e5f607-1829-43a4-b5c6-d7e8f90a1b2c",
		)
	}
	if !conv.IsShared {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"sharing has been revoked for this conversation",
			nil,
			"e5f60718-293a-44b5-c6d7-e8f90a1b2c3d",
		)
	}

	if link.Expired(time.Now()) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeExpired,
			"this shared link has expired",
			nil,
			"f6071829-3a4b-45c6-d7e8-f90a1b2c3d4e",
		)
	}
	if link.Exhausted() {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeForbidden,
			"this shared link has reached its view limit",
			nil,
			"07182a3b-4c5d-46e7-f809-1a2b3c4d5e6f",
		)
	}

	if err := s.links.IncrementViewCount(ctx, link.ID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	shared := make([]SharedMessage, 0, len(messages))
	for _, msg := range messages {
		shared = append(shared, SharedMessage{
			ID:          msg.PublicID,
			Role:        msg.Role,
			Content:     msg.Content,
			Attachments: msg.Attachments,
			CreatedAt:   msg.CreatedAt,
		})
	}

	return &SharedConversation{
		Title:     conv.Title,
		Mode:      conv.Mode,
		OwnerName: owner.Name,
		SharedAt:  link.CreatedAt,
		Messages:  shared,
	}, nil
}

func (s *Service) findOwned(ctx context.Context, userID uint, publicID string) (*conversation.Conversation, error) {
	conv, err := s.conversations.FindOne(ctx, conversation.Filter{PublicID: &publicID, UserID: &userID})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			nil,
			"182a3b4c-5d6e-47f8-091a-2b3c4d5e6f70",
		)
	}
	return conv, nil
}
