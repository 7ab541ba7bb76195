package document

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/functional"
)

// DocumentView is one generated document.
type DocumentView struct {
	ID           string         `json:"id"`
	TemplateName string         `json:"templateName"`
	Data         map[string]any `json:"data,omitempty"`
	Content      string         `json:"content,omitempty"`
	FileURL      string         `json:"fileUrl,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func NewDocumentView(doc *document.Document) DocumentView {
	return DocumentView{
		ID:           doc.PublicID,
		TemplateName: doc.TemplateName,
		Data:         doc.Data,
		Content:      doc.Content,
		FileURL:      doc.FileURL,
		CreatedAt:    doc.CreatedAt,
	}
}

func NewDocumentViews(documents []*document.Document) []DocumentView {
	return functional.Map(documents, NewDocumentView)
}
