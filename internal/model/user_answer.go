package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAnswer holds one submitted answer. Mark is written once by the grader
// and is restricted to 0, 50 or 100; the store rejects anything else.
type UserAnswer struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"answer_id"`
	QuestionID  uuid.UUID      `json:"question_id" gorm:"type:uuid;not null;index"`
	Question    Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserAnswer  string         `json:"user_answer" gorm:"type:text;not null"`
	Mark        *int           `json:"mark,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *UserAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
