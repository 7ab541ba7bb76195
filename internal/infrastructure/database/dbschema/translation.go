package dbschema

import (
	"time"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/translation"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Translation{})
}

type Translation struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PublicID       string    `gorm:"column:public_id;size:64;not null;uniqueIndex"`
	UserID         uint      `gorm:"column:user_id;not null;index"`
	SourceText     string    `gorm:"column:source_text;type:text;not null"`
	TranslatedText string    `gorm:"column:translated_text;type:text;not null"`
	SourceLang     string    `gorm:"column:source_lang;size:16;not null"`
	TargetLang     string    `gorm:"column:target_lang;size:16;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
}

func (Translation) TableName() string {
	return "translations"
}

func NewSchemaTranslation(t *translation.Translation) *Translation {
	if t == nil {
		return nil
	}
	return &Translation{
		ID:             t.ID,
		PublicID:       t.PublicID,
		UserID:         t.UserID,
		SourceText:     t.SourceText,
		TranslatedText: t.TranslatedText,
		SourceLang:     t.SourceLang,
		TargetLang:     t.TargetLang,
		CreatedAt:      t.CreatedAt,
	}
}

func (t *Translation) EtoD() *translation.Translation {
	if t == nil {
		return nil
	}
	return &translation.Translation{
		ID:             t.ID,
		PublicID:       t.PublicID,
		UserID:         t.UserID,
		SourceText:     t.SourceText,
		TranslatedText: t.TranslatedText,
		SourceLang:     t.SourceLang,
		TargetLang:     t.TargetLang,
		CreatedAt:      t.CreatedAt,
	}
}
