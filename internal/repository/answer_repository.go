package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.UserAnswer) error
	Update(answer *model.UserAnswer) error
	FindByID(id uuid.UUID) (*model.UserAnswer, error)
	FindByIDWithQuestion(id uuid.UUID) (*model.UserAnswer, error)
	FindByQuestionID(questionID uuid.UUID) ([]model.UserAnswer, error)
	FindLatestByQuestionID(questionID uuid.UUID) (*model.UserAnswer, error)
	DeleteByQuestionID(questionID uuid.UUID) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *model.UserAnswer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) Update(answer *model.UserAnswer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) FindByID(id uuid.UUID) (*model.UserAnswer, error) {
	var answer model.UserAnswer
	if err := r.db.First(&answer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByIDWithQuestion(id uuid.UUID) (*model.UserAnswer, error) {
	var answer model.UserAnswer
	err := r.db.Preload("Question").First(&answer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) DeleteByQuestionID(questionID uuid.UUID) error {
	return r.db.Delete(&model.UserAnswer{}, "question_id = ?", questionID).Error
}

func (r *answerRepository) FindByQuestionID(questionID uuid.UUID) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	if err := r.db.Where("question_id = ?", questionID).Order("submitted_at desc").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) FindLatestByQuestionID(questionID uuid.UUID) (*model.UserAnswer, error) {
	var answer model.UserAnswer
	err := r.db.Where("question_id = ?", questionID).Order("submitted_at desc").First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &answer, nil
}
