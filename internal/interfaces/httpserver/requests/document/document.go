package document

// GenerateDocumentRequest renders a named template with caller data.
type GenerateDocumentRequest struct {
	TemplateName string         `json:"templateName" binding:"required,min=1,max=255"`
	Data         map[string]any `json:"data" binding:"omitempty"`
}
