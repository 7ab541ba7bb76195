package chat

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/functional"
)

// ConversationView is the owner-facing conversation projection. LastMessage
// is only populated on listings.
type ConversationView struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Mode          string       `json:"mode"`
	SessionID     *string      `json:"sessionId,omitempty"`
	DocumentID    *string      `json:"documentId,omitempty"`
	DocumentName  *string      `json:"documentName,omitempty"`
	IsShared      bool         `json:"isShared"`
	LastMessage   *MessageView `json:"lastMessage,omitempty"`
	LastMessageAt time.Time    `json:"lastMessageAt"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func NewConversationView(conv *conversation.Conversation) ConversationView {
	return ConversationView{
		ID:            conv.PublicID,
		Title:         conv.Title,
		Mode:          string(conv.Mode),
		SessionID:     conv.SessionID,
		DocumentID:    conv.DocumentID,
		DocumentName:  conv.DocumentName,
		IsShared:      conv.IsShared,
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
	}
}

// NewConversationListViews renders listing entries, attaching each
// conversation's most recent message.
func NewConversationListViews(entries []*conversation.ListEntry) []ConversationView {
	return functional.Map(entries, func(entry *conversation.ListEntry) ConversationView {
		view := NewConversationView(entry.Conversation)
		if entry.LastMessage != nil {
			last := NewMessageView(entry.LastMessage)
			view.LastMessage = &last
		}
		return view
	})
}

// MessageView is a single turn.
type MessageView struct {
	ID          string                        `json:"id"`
	Role        string                        `json:"role"`
	Content     string                        `json:"content"`
	Attachments []string                      `json:"attachments,omitempty"`
	Metadata    *conversation.MessageMetadata `json:"metadata,omitempty"`
	CreatedAt   time.Time                     `json:"createdAt"`
}

func NewMessageView(msg *conversation.Message) MessageView {
	return MessageView{
		ID:          msg.PublicID,
		Role:        string(msg.Role),
		Content:     msg.Content,
		Attachments: msg.Attachments,
		Metadata:    msg.Metadata,
		CreatedAt:   msg.CreatedAt,
	}
}

func NewMessageViews(messages []*conversation.Message) []MessageView {
	return functional.Map(messages, NewMessageView)
}

// ConversationDetail bundles a conversation with its full history.
type ConversationDetail struct {
	Conversation ConversationView `json:"conversation"`
	Messages     []MessageView    `json:"messages"`
}

// SendMessageResponse pairs the assistant turn with the post-turn
// conversation routing state.
type SendMessageResponse struct {
	Message      MessageView                    `json:"message"`
	Conversation conversation.ConversationState `json:"conversation"`
}

func NewSendMessageResponse(result *conversation.SendResult) SendMessageResponse {
	return SendMessageResponse{
		Message:      NewMessageView(result.Message),
		Conversation: result.Conversation,
	}
}

// DeletedResponse reports bulk deletion counts.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
