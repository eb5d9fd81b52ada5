package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	CreateBatch(questions []*model.Question) error
	Update(question *model.Question) error
	FindByID(id uuid.UUID) (*model.Question, error)
	FindByIDWithDocument(id uuid.UUID) (*model.Question, error)
	FindByDocumentID(documentID uuid.UUID) ([]model.Question, error)
	FindAll() ([]model.Question, error)
	Delete(id uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) CreateBatch(questions []*model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(questions).Error
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) FindByID(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithDocument(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Document").First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByDocumentID(documentID uuid.UUID) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("document_id = ?", documentID).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}
