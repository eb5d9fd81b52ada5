package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/ptmai/recallify/internal/dto"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/repository"
	"github.com/ptmai/recallify/internal/store"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	GetQuestion(questionID string) (*dto.QuestionDetailDTO, error)
	ListForDocument(documentID uuid.UUID) (*dto.QuestionListResponse, error)
}

type questionService struct {
	questionStore store.Store
	documentRepo  repository.DocumentRepository
}

func NewQuestionService(questionStore store.Store, documentRepo repository.DocumentRepository) QuestionService {
	return &questionService{questionStore: questionStore, documentRepo: documentRepo}
}

func (s *questionService) GetQuestion(questionID string) (*dto.QuestionDetailDTO, error) {
	rec, err := s.questionStore.LoadQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching question %s: %w", questionID, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: question %s", errs.ErrNotFound, questionID)
	}

	answers, err := s.questionStore.ListAnswers(questionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answers for question %s: %w", questionID, err)
	}
	answerDTOs := make([]dto.AnswerSummaryDTO, 0, len(answers))
	for _, answer := range answers {
		var answerDTO dto.AnswerSummaryDTO
		if copyErr := copier.Copy(&answerDTO, answer); copyErr != nil {
			log.Error().Err(copyErr).Str("answerID", answer.AnswerID).Msg("Failed to copy answer record to DTO")
			continue
		}
		answerDTOs = append(answerDTOs, answerDTO)
	}

	documentTitle := "Untitled Document"
	if docID, parseErr := uuid.Parse(rec.DocumentID); parseErr == nil {
		document, docErr := s.documentRepo.FindByID(docID)
		if docErr == nil && document != nil && document.Title != "" {
			documentTitle = document.Title
		}
	}

	return &dto.QuestionDetailDTO{
		QuestionID:        rec.QuestionID,
		DocumentID:        rec.DocumentID,
		DocumentTitle:     documentTitle,
		QuestionText:      rec.QuestionText,
		AnswerExplanation: rec.Explanation,
		UserAnswers:       answerDTOs,
	}, nil
}

func (s *questionService) ListForDocument(documentID uuid.UUID) (*dto.QuestionListResponse, error) {
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

	resp := &dto.QuestionListResponse{Questions: []dto.QuestionStatusDTO{}}
	for _, rec := range records {
		resp.Questions = append(resp.Questions, dto.QuestionStatusDTO{
			QuestionID:      rec.QuestionID,
			QuestionText:    rec.QuestionText,
			HasBeenAnswered: rec.UserAnswer != nil,
			LastMark:        rec.Mark,
		})
	}
	return resp, nil
}
