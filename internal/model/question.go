package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is created once per generation pass and never mutated afterwards.
type Question struct {
	ID                uuid.UUID      `gorm:"type:uuid;primarykey" json:"question_id"`
	DocumentID        uuid.UUID      `json:"document_id" gorm:"type:uuid;not null;index"`
	Document          Document       `json:"document,omitempty" gorm:"foreignKey:DocumentID"`
	QuestionText      string         `json:"question_text" gorm:"type:text;not null"`
	AnswerExplanation string         `json:"answer_explanation" gorm:"type:text;not null"`
	UserAnswers       []UserAnswer   `json:"user_answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
