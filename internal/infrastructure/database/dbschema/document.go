package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/document"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Document{})
}

type Document struct {
	ID           uint           `gorm:"column:id;primaryKey;autoIncrement"`
	PublicID     string         `gorm:"column:public_id;size:64;not null;uniqueIndex"`
	UserID       uint           `gorm:"column:user_id;not null;index"`
	TemplateName string         `gorm:"column:template_name;size:255;not null"`
	Data         datatypes.JSON `gorm:"column:data;type:jsonb"`
	Content      string         `gorm:"column:content;type:text"`
	FileURL      string         `gorm:"column:file_url;size:1024"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null;index"`
}

func (Document) TableName() string {
	return "documents"
}

func NewSchemaDocument(doc *document.Document) (*Document, error) {
	if doc == nil {
		return nil, nil
	}

	var data datatypes.JSON
	if len(doc.Data) > 0 {
		encoded, err := json.Marshal(doc.Data)
		if err != nil {
			return nil, err
		}
		data = datatypes.JSON(encoded)
	}

	return &Document{
		ID:           doc.ID,
		PublicID:     doc.PublicID,
		UserID:       doc.UserID,
		TemplateName: doc.TemplateName,
		Data:         data,
		Content:      doc.Content,
		FileURL:      doc.FileURL,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (d *Document) EtoD() (*document.Document, error) {
	if d == nil {
		return nil, nil
	}

	var data map[string]any
	if len(d.Data) > 0 {
		if err := json.Unmarshal(d.Data, &data); err != nil {
			return nil, err
		}
	}

	return &document.Document{
		ID:           d.ID,
		PublicID:     d.PublicID,
		UserID:       d.UserID,
		TemplateName: d.TemplateName,
		Data:         data,
		Content:      d.Content,
		FileURL:      d.FileURL,
		CreatedAt:    d.CreatedAt,
	}, nil
}
