package conversation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/utils/idgen"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

const (
	publicIDLength = 16
	defaultTitle   = "New Conversation"
	maxTitleRunes  = 50
)

// Service is the conversation engine: CRUD over threads plus the send-message
// orchestration that routes turns to the right inference pipeline, maintains
// session/document affinity and keeps cache and storage coherent.
type Service struct {
	conversations Repository
	messages      MessageRepository
	backend       AIBackend
	cache         ReplyCache
	tx            TxRunner
	logger        zerolog.Logger
}

func NewService(
	conversations Repository,
	messages MessageRepository,
	backend AIBackend,
	cache ReplyCache,
	tx TxRunner,
	logger zerolog.Logger,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		backend:       backend,
		cache:         cache,
		tx:            tx,
		logger:        logger.With().Str("component", "conversation-service").Logger(),
	}
}

// CreateInput describes a new conversation. A non-empty FirstMessage seeds
// the title and is stored as the opening user turn.
type CreateInput struct {
	UserID       uint
	Title        string
	Mode         Mode
	FirstMessage string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Conversation, error) {
	if !ValidMode(input.Mode) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"mode must be NORMAL or AGENTIC",
			nil,
			"e1f2a3b4-c5d6-4788-99aa-bbccddee0011",
		)
	}

	title := input.Title
	if title == "" {
		title = deriveTitle(input.FirstMessage)
	}

	publicID, err := idgen.GenerateSecureID("conv", publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate conversation ID",
			err,
			"a2b3c4d5-e6f7-4899-aabb-ccddeeff0022",
		)
	}

	conv := &Conversation{
		PublicID:      publicID,
		UserID:        input.UserID,
		Title:         title,
		Mode:          input.Mode,
		LastMessageAt: time.Now(),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.conversations.Create(ctx, conv); err != nil {
			return err
		}
		if input.FirstMessage != "" {
			return s.appendMessage(ctx, conv.ID, RoleUser, input.FirstMessage, nil, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(ctx, input.UserID)
	s.logger.Info().
		Str("conversation_id", conv.PublicID).
		Str("mode", string(conv.Mode)).
		Msg("conversation created")
	return conv, nil
}

// List returns the user's conversations ordered by most recent activity,
// each annotated with its newest message, served from cache when possible.
func (s *Service) List(ctx context.Context, userID uint) ([]*ListEntry, error) {
	if cached, ok := s.cache.GetConversationList(ctx, userID); ok {
		return cached, nil
	}

	conversations, err := s.conversations.FindByFilter(ctx, Filter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(conversations))
	for _, conv := range conversations {
		ids = append(ids, conv.ID)
	}
	latest, err := s.messages.LatestByConversations(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]*ListEntry, 0, len(conversations))
	for _, conv := range conversations {
		entries = append(entries, &ListEntry{
			Conversation: conv,
			LastMessage:  latest[conv.ID],
		})
	}

	s.cache.StoreConversationList(ctx, userID, entries)
	return entries, nil
}

// Get returns a conversation and its messages in chronological order.
// Conversations owned by other users are indistinguishable from missing ones.
func (s *Service) Get(ctx context.Context, userID uint, publicID string) (*Conversation, []*Message, error) {
	conv, err := s.findOwned(ctx, userID, publicID)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, nil, err
	}
	return conv, messages, nil
}

// Info returns conversation metadata without loading messages.
func (s *Service) Info(ctx context.Context, userID uint, publicID string) (*Conversation, error) {
	return s.findOwned(ctx, userID, publicID)
}

// Rename updates the conversation title.
func (s *Service) Rename(ctx context.Context, userID uint, publicID, title string) (*Conversation, error) {
	conv, err := s.findOwned(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	conv.Title = truncateRunes(title, maxTitleRunes)
	if err := s.conversations.Update(ctx, conv); err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(ctx, userID)
	s.cache.InvalidateConversation(ctx, conv.PublicID)
	return conv, nil
}

// Delete removes a conversation with its messages and drops the related
// cache entries. Share links cascade at the storage layer.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	conv, err := s.findOwned(ctx, userID, publicID)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.messages.DeleteByConversation(ctx, conv.ID); err != nil {
			return err
		}
		return s.conversations.Delete(ctx, conv.ID)
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateUser(ctx, userID)
	s.cache.InvalidateConversation(ctx, conv.PublicID)
	return nil
}

// DeleteAll wipes every conversation of the user.
func (s *Service) DeleteAll(ctx context.Context, userID uint) (int64, error) {
	conversations, err := s.conversations.FindByFilter(ctx, Filter{UserID: &userID})
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, conv := range conversations {
			if err := s.messages.DeleteByConversation(ctx, conv.ID); err != nil {
				return err
			}
		}
		deleted, err = s.conversations.DeleteByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateUser(ctx, userID)
	for _, conv := range conversations {
		s.cache.InvalidateConversation(ctx, conv.PublicID)
	}
	return deleted, nil
}

// SendInput is one inbound user turn.
type SendInput struct {
	UserID         uint
	ConversationID string
	Content        string
	File           *FileUpload
	InputLanguage  *string
	OutputLanguage *string
}

// SendResult pairs the persisted assistant message with the conversation's
// affinity state after the turn.
type SendResult struct {
	Message      *Message
	Conversation ConversationState
}

// ConversationState is the routing-relevant slice of a conversation.
type ConversationState struct {
	ID         string  `json:"id"`
	SessionID  *string `json:"sessionId"`
	DocumentID *string `json:"documentId"`
}

// Send routes one user turn through the cache gate and the inference
// pipelines, then persists the exchange.
//
// Routing, first match wins:
//  1. attached file + AGENTIC mode: upload-and-chat, which binds the
//     returned document and session to the conversation
//  2. bound document + AGENTIC mode: agent chat with session and document
//  3. AGENTIC mode: agent chat with the session only
//  4. NORMAL mode: plain chat
//
// The cache gate is only consulted (and written) for turns without a file.
func (s *Service) Send(ctx context.Context, input SendInput) (*SendResult, error) {
	if input.Content == "" && input.File == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"message content is required",
			nil,
			"b4c5d6e7-f809-4a1b-8c2d-3e4f50617283",
		)
	}

	conv, err := s.findOwned(ctx, input.UserID, input.ConversationID)
	if err != nil {
		return nil, err
	}

	if input.File == nil {
		if cached, ok := s.cache.GetReply(ctx, input.Content, conv.Mode); ok {
			return s.finishTurn(ctx, conv, input, Normalize(cached), true)
		}
	}

	reply, err := s.callBackend(ctx, conv, input)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(reply)
	result, err := s.finishTurn(ctx, conv, input, normalized, false)
	if err != nil {
		return nil, err
	}

	// Cache writes are best effort and never cover file turns: an upload
	// reply binds a fresh document, which must not leak across requests.
	if input.File == nil {
		s.cache.StoreReply(ctx, input.Content, conv.Mode, reply)
	}

	return result, nil
}

func (s *Service) callBackend(ctx context.Context, conv *Conversation, input SendInput) (BackendReply, error) {
	switch {
	case input.File != nil && conv.Mode == ModeAgentic:
		return s.backend.AgentUploadAndChat(ctx, *input.File, input.Content, conv.SessionID, input.InputLanguage, input.OutputLanguage)
	case conv.DocumentID != nil && conv.Mode == ModeAgentic:
		return s.backend.AgentChat(ctx, input.Content, conv.SessionID, conv.DocumentID)
	case conv.Mode == ModeAgentic:
		return s.backend.AgentChat(ctx, input.Content, conv.SessionID, nil)
	default:
		return s.backend.Chat(ctx, input.Content)
	}
}

// finishTurn applies affinity updates and persists the user/assistant pair in
// strict order, then refreshes activity and drops the stale listing cache.
func (s *Service) finishTurn(ctx context.Context, conv *Conversation, input SendInput, normalized NormalizedReply, fromCache bool) (*SendResult, error) {
	now := time.Now()

	if updated := applyAffinity(conv, normalized); updated {
		if err := s.conversations.Update(ctx, conv); err != nil {
			return nil, err
		}
	}

	metadata := normalized.Metadata
	if fromCache {
		if metadata == nil {
			metadata = &MessageMetadata{}
		}
		metadata.Cached = true
	}
	if metadata != nil {
		metadata.InputLanguage = input.InputLanguage
		metadata.OutputLanguage = input.OutputLanguage
	} else if input.InputLanguage != nil || input.OutputLanguage != nil {
		metadata = &MessageMetadata{
			InputLanguage:  input.InputLanguage,
			OutputLanguage: input.OutputLanguage,
		}
	}

	// The assistant turn records the document it answered against even when
	// the reply itself does not repeat the identifier.
	if conv.DocumentID != nil {
		if metadata == nil {
			metadata = &MessageMetadata{}
		}
		if metadata.DocumentID == nil {
			metadata.DocumentID = conv.DocumentID
		}
	}

	var attachments []string
	if input.File != nil {
		attachments = []string{input.File.Filename}
	}

	var assistantMsg *Message
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// User turn first: a conversation must never show an answer
		// without the question that produced it.
		if err := s.appendMessage(ctx, conv.ID, RoleUser, input.Content, attachments, nil); err != nil {
			return err
		}
		msg, err := s.persistAssistantMessage(ctx, conv.ID, normalized.Content, metadata)
		if err != nil {
			return err
		}
		assistantMsg = msg
		return s.conversations.TouchLastMessage(ctx, conv.ID, now)
	})
	if err != nil {
		return nil, err
	}

	conv.LastMessageAt = now
	s.cache.InvalidateUser(ctx, conv.UserID)

	return &SendResult{
		Message: assistantMsg,
		Conversation: ConversationState{
			ID:         conv.PublicID,
			SessionID:  conv.SessionID,
			DocumentID: conv.DocumentID,
		},
	}, nil
}

// applyAffinity folds the normalized reply's session/document identifiers
// into the conversation. Reports whether anything changed.
func applyAffinity(conv *Conversation, normalized NormalizedReply) bool {
	changed := false
	if normalized.SessionID != nil && (conv.SessionID == nil || *conv.SessionID != *normalized.SessionID) {
		conv.SessionID = normalized.SessionID
		changed = true
	}
	if normalized.DocumentID != nil && (conv.DocumentID == nil || *conv.DocumentID != *normalized.DocumentID) {
		conv.DocumentID = normalized.DocumentID
		changed = true
	}
	if normalized.DocumentName != nil && (conv.DocumentName == nil || *conv.DocumentName != *normalized.DocumentName) {
		conv.DocumentName = normalized.DocumentName
		changed = true
	}
	return changed
}

func (s *Service) appendMessage(ctx context.Context, conversationID uint, role Role, content string, attachments []string, metadata *MessageMetadata) error {
	_, err := s.createMessage(ctx, conversationID, role, content, attachments, metadata)
	return err
}

func (s *Service) persistAssistantMessage(ctx context.Context, conversationID uint, content string, metadata *MessageMetadata) (*Message, error) {
	return s.createMessage(ctx, conversationID, RoleAssistant, content, nil, metadata)
}

func (s *Service) createMessage(ctx context.Context, conversationID uint, role Role, content string, attachments []string, metadata *MessageMetadata) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", publicIDLength)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"failed to generate message ID",
			err,
			"c5d6e7f8-0a1b-4c2d-9e3f-405162738495",
		)
	}

	msg := &Message{
		PublicID:       publicID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Attachments:    attachments,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// findOwned loads a conversation scoped to its owner. A conversation that
// exists but belongs to someone else reports NotFound, not Forbidden.
func (s *Service) findOwned(ctx context.Context, userID uint, publicID string) (*Conversation, error) {
	conv, err := s.conversations.FindOne(ctx, Filter{PublicID: &publicID, UserID: &userID})
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
			"d6e7f809-1a2b-4c3d-8e4f-516273849506",
		)
	}
	return conv, nil
}

func deriveTitle(firstMessage string) string {
	if firstMessage == "" {
		return defaultTitle
	}
	return truncateRunes(firstMessage, maxTitleRunes)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
