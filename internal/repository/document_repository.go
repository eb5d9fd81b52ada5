package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(document *model.Document) error
	Update(document *model.Document) error
	FindByID(id uuid.UUID) (*model.Document, error)
	FindByIDWithQuestions(id uuid.UUID) (*model.Document, error)
	FindAll() ([]model.Document, error)
	Delete(id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(document *model.Document) error {
	return r.db.Create(document).Error
}

func (r *documentRepository) Update(document *model.Document) error {
	// Save overwrites all fields; callers mutate the loaded model and save it back.
	return r.db.Save(document).Error
}

func (r *documentRepository) FindByID(id uuid.UUID) (*model.Document, error) {
	var document model.Document
	if err := r.db.First(&document, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindByIDWithQuestions(id uuid.UUID) (*model.Document, error) {
	var document model.Document
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.created_at ASC")
	}).First(&document, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindAll() ([]model.Document, error) {
	var documents []model.Document
	if err := r.db.Order("uploaded_at desc").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Document{}, "id = ?", id).Error
}
