package chat

// CreateConversationRequest opens a new conversation. FirstMessage, when
// present, seeds the title and is stored as the opening user turn.
type CreateConversationRequest struct {
	Title        string `json:"title" binding:"omitempty,max=255"`
	Mode         string `json:"mode" binding:"required,oneof=NORMAL AGENTIC"`
	FirstMessage string `json:"firstMessage" binding:"omitempty,max=10000"`
}

// RenameConversationRequest updates the title.
type RenameConversationRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// SendMessageRequest is the JSON body of a text-only turn. File turns arrive
// as multipart form data and carry the same fields.
type SendMessageRequest struct {
	Content        string  `json:"content" form:"content" binding:"omitempty,max=50000"`
	InputLanguage  *string `json:"inputLanguage" form:"inputLanguage" binding:"omitempty,max=16"`
	OutputLanguage *string `json:"outputLanguage" form:"outputLanguage" binding:"omitempty,max=16"`
}
