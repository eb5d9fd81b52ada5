package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/dto"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/model"
	"github.com/ptmai/recallify/internal/repository"
	"github.com/ptmai/recallify/internal/store"
	"github.com/rs/zerolog/log"
)

type DocumentService interface {
	CreateDocument(title, filePath string) (*model.Document, error)
	ListDocuments() (*dto.DocumentListResponse, error)
	GetDocument(documentID uuid.UUID) (*dto.DocumentDetailDTO, error)
}

type documentService struct {
	documentRepo  repository.DocumentRepository
	questionStore store.Store
}

func NewDocumentService(documentRepo repository.DocumentRepository, questionStore store.Store) DocumentService {
	return &documentService{documentRepo: documentRepo, questionStore: questionStore}
}

func (s *documentService) CreateDocument(title, filePath string) (*model.Document, error) {
	document := model.Document{
		Title:    title,
		FilePath: filePath,
	}
	if err := s.documentRepo.Create(&document); err != nil {
		log.Error().Err(err).Str("file", filePath).Msg("Failed to create document record")
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &document, nil
}

func (s *documentService) ListDocuments() (*dto.DocumentListResponse, error) {
	documents, err := s.documentRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list documents")
		return nil, fmt.Errorf("error fetching documents: %w", err)
	}

	resp := &dto.DocumentListResponse{Documents: []dto.DocumentSummaryDTO{}}
	for _, document := range documents {
		records, recErr := s.questionStore.ListQuestions(document.ID.String())
		if recErr != nil {
			return nil, fmt.Errorf("error counting questions for document %s: %w", document.ID, recErr)
		}
		resp.Documents = append(resp.Documents, dto.DocumentSummaryDTO{
			DocumentID:     document.ID.String(),
			Title:          displayTitle(document.Title),
			UploadedAt:     document.UploadedAt,
			PageCount:      document.PageCount,
			QuestionsCount: len(records),
		})
	}
	return resp, nil
}

func (s *documentService) GetDocument(documentID uuid.UUID) (*dto.DocumentDetailDTO, error) {
	document, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching document %s: %w", documentID, err)
	}
	if document == nil {
		return nil, fmt.Errorf("%w: document %s", errs.ErrNotFound, documentID)
	}

	records, err := s.questionStore.ListQuestions(documentID.String())
	if err != nil {
		return nil, fmt.Errorf("error fetching questions for document %s: %w", documentID, err)
	}

	questions := make([]dto.QuestionSummaryDTO, 0, len(records))
	for _, rec := range records {
		questions = append(questions, dto.QuestionSummaryDTO{
			QuestionID:   rec.QuestionID,
			QuestionText: rec.QuestionText,
		})
	}

	return &dto.DocumentDetailDTO{
		DocumentID:  document.ID.String(),
		Title:       displayTitle(document.Title),
		UploadedAt:  document.UploadedAt,
		PageCount:   document.PageCount,
		Author:      document.Author,
		CreatedDate: document.CreatedDate,
		Questions:   questions,
	}, nil
}

func displayTitle(title string) string {
	if title == "" {
		return "Untitled Document"
	}
	return title
}
