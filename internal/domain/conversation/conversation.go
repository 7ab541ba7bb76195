package conversation

import (
	"context"
	"time"
)

// Mode selects the inference pipeline a conversation is routed to.
type Mode string

const (
	// ModeNormal is single-shot chat against the base model.
	ModeNormal Mode = "NORMAL"
	// ModeAgentic is the retrieval agent pipeline with session and
	// document affinity.
	ModeAgentic Mode = "AGENTIC"
)

// ValidMode reports whether m is a known conversation mode.
func ValidMode(m Mode) bool {
	return m == ModeNormal || m == ModeAgentic
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// Conversation is a chat thread owned by a single user. SessionID and
// DocumentID hold the agent-pipeline affinity: once the backend assigns a
// session or binds a document, follow-up turns are routed with them.
type Conversation struct {
	ID            uint
	PublicID      string
	UserID        uint
	Title         string
	Mode          Mode
	SessionID     *string
	DocumentID    *string
	DocumentName  *string
	IsShared      bool
	LastMessageAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToolUsage is one retrieval step reported by the agent pipeline.
type ToolUsage struct {
	Tool        string   `json:"tool"`
	QueryTime   *float64 `json:"query_time,omitempty"`
	ChunksUsed  *int     `json:"chunks_used,omitempty"`
	TotalChunks *int     `json:"total_chunks,omitempty"`
}

// MessageMetadata is the closed metadata shape persisted with assistant
// messages. Unknown backend fields never end up here.
type MessageMetadata struct {
	ToolsUsed      []ToolUsage `json:"tools_used,omitempty"`
	TotalQueryTime *float64    `json:"total_query_time,omitempty"`
	TotalChunks    *int        `json:"total_chunks,omitempty"`
	DocumentID     *string     `json:"document_id,omitempty"`
	Cached         bool        `json:"cached,omitempty"`
	InputLanguage  *string     `json:"input_language,omitempty"`
	OutputLanguage *string     `json:"output_language,omitempty"`
}

// Message is a single turn inside a conversation.
type Message struct {
	ID             uint
	PublicID       string
	ConversationID uint
	Role           Role
	Content        string
	Attachments    []string
	Metadata       *MessageMetadata
	CreatedAt      time.Time
}

// ListEntry pairs a conversation with its single most recent message, the
// shape listings are served and cached in.
type ListEntry struct {
	Conversation *Conversation `json:"conversation"`
	LastMessage  *Message      `json:"lastMessage,omitempty"`
}

// Filter narrows conversation lookups. Nil fields are ignored.
type Filter struct {
	ID       *uint
	PublicID *string
	UserID   *uint
	IsShared *bool
}

type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindOne(ctx context.Context, filter Filter) (*Conversation, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Conversation, error)
	Update(ctx context.Context, conv *Conversation) error
	// TouchLastMessage refreshes the activity timestamp used for list ordering.
	TouchLastMessage(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// ListByConversation returns messages in chronological order.
	ListByConversation(ctx context.Context, conversationID uint) ([]*Message, error)
	// LatestByConversations returns the newest message per conversation,
	// keyed by conversation ID. Conversations without messages are absent.
	LatestByConversations(ctx context.Context, conversationIDs []uint) (map[uint]*Message, error)
	DeleteByConversation(ctx context.Context, conversationID uint) error
}

// FileUpload is an inbound attachment forwarded to the agent pipeline.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AIBackend is the Python inference service surface the conversation engine
// depends on.
type AIBackend interface {
	Chat(ctx context.Context, prompt string) (BackendReply, error)
	AgentChat(ctx context.Context, message string, sessionID, documentID *string) (BackendReply, error)
	AgentUploadAndChat(ctx context.Context, file FileUpload, initialMessage string, sessionID *string, inputLanguage, outputLanguage *string) (BackendReply, error)
}

// ReplyCache is the read-through gate in front of the AI backend plus the
// user-scoped listing cache. Implementations must swallow their own failures:
// a broken cache degrades to a miss, never to a request error.
type ReplyCache interface {
	GetReply(ctx context.Context, query string, mode Mode) (BackendReply, bool)
	StoreReply(ctx context.Context, query string, mode Mode, reply BackendReply)
	GetConversationList(ctx context.Context, userID uint) ([]*ListEntry, bool)
	StoreConversationList(ctx context.Context, userID uint, entries []*ListEntry)
	InvalidateUser(ctx context.Context, userID uint)
	InvalidateConversation(ctx context.Context, conversationPublicID string)
}

// TxRunner executes a unit of work inside a database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
