package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/conversation"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{}, Message{})
}

type Conversation struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PublicID      string    `gorm:"column:public_id;size:64;not null;uniqueIndex"`
	UserID        uint      `gorm:"column:user_id;not null;index"`
	Title         string    `gorm:"column:title;size:255;not null"`
	Mode          string    `gorm:"column:mode;size:16;not null"`
	SessionID     *string   `gorm:"column:session_id;size:255"`
	DocumentID    *string   `gorm:"column:document_id;size:255"`
	DocumentName  *string   `gorm:"column:document_name;size:255"`
	IsShared      *bool     `gorm:"column:is_shared;not null;default:false"`
	LastMessageAt time.Time `gorm:"column:last_message_at;not null;index"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func NewSchemaConversation(conv *conversation.Conversation) *Conversation {
	if conv == nil {
		return nil
	}

	isShared := conv.IsShared
	return &Conversation{
		ID:            conv.ID,
		PublicID:      conv.PublicID,
		UserID:        conv.UserID,
		Title:         conv.Title,
		Mode:          string(conv.Mode),
		SessionID:     conv.SessionID,
		DocumentID:    conv.DocumentID,
		DocumentName:  conv.DocumentName,
		IsShared:      &isShared,
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
		UpdatedAt:     conv.UpdatedAt,
	}
}

func (c *Conversation) EtoD() *conversation.Conversation {
	if c == nil {
		return nil
	}

	isShared := false
	if c.IsShared != nil {
		isShared = *c.IsShared
	}

	return &conversation.Conversation{
		ID:            c.ID,
		PublicID:      c.PublicID,
		UserID:        c.UserID,
		Title:         c.Title,
		Mode:          conversation.Mode(c.Mode),
		SessionID:     c.SessionID,
		DocumentID:    c.DocumentID,
		DocumentName:  c.DocumentName,
		IsShared:      isShared,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type Message struct {
	ID             uint           `gorm:"column:id;primaryKey;autoIncrement"`
	PublicID       string         `gorm:"column:public_id;size:64;not null;uniqueIndex"`
	ConversationID uint           `gorm:"column:conversation_id;not null;index"`
	Role           string         `gorm:"column:role;size:16;not null"`
	Content        string         `gorm:"column:content;type:text;not null"`
	Attachments    datatypes.JSON `gorm:"column:attachments;type:jsonb"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt      time.Time      `gorm:"column:created_at;not null"`
}

func (Message) TableName() string {
	return "messages"
}

func NewSchemaMessage(msg *conversation.Message) (*Message, error) {
	if msg == nil {
		return nil, nil
	}

	var attachments datatypes.JSON
	if len(msg.Attachments) > 0 {
		data, err := json.Marshal(msg.Attachments)
		if err != nil {
			return nil, err
		}
		attachments = datatypes.JSON(data)
	}

	var metadata datatypes.JSON
	if msg.Metadata != nil {
		data, err := json.Marshal(msg.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = datatypes.JSON(data)
	}

	return &Message{
		ID:             msg.ID,
		PublicID:       msg.PublicID,
		ConversationID: msg.ConversationID,
		Role:           string(msg.Role),
		Content:        msg.Content,
		Attachments:    attachments,
		Metadata:       metadata,
		CreatedAt:      msg.CreatedAt,
	}, nil
}

func (m *Message) EtoD() (*conversation.Message, error) {
	if m == nil {
		return nil, nil
	}

	var attachments []string
	if len(m.Attachments) > 0 {
		if err := json.Unmarshal(m.Attachments, &attachments); err != nil {
			return nil, err
		}
	}

	var metadata *conversation.MessageMetadata
	if len(m.Metadata) > 0 {
		metadata = &conversation.MessageMetadata{}
		if err := json.Unmarshal(m.Metadata, metadata); err != nil {
			return nil, err
		}
	}

	return &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           conversation.Role(m.Role),
		Content:        m.Content,
		Attachments:    attachments,
		Metadata:       metadata,
		CreatedAt:      m.CreatedAt,
	}, nil
}
