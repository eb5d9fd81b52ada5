package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"document_id"`
	Title       string         `json:"title"`
	Author      *string        `json:"author,omitempty"`
	CreatedDate *time.Time     `json:"created_date,omitempty"`
	FilePath    string         `json:"file_path" gorm:"not null"`
	Content     string         `json:"content" gorm:"type:text"`
	PageCount   int            `json:"page_count" gorm:"default:0"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:DocumentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UploadedAt  time.Time      `json:"uploaded_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
