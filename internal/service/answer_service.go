package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ptmai/recallify/internal/dto"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/store"
	"github.com/rs/zerolog/log"
)

type AnswerService interface {
	// SubmitAnswer records a learner's answer and grades it synchronously.
	SubmitAnswer(ctx context.Context, questionID, answerText string) (*dto.SubmitAnswerResponse, error)
	GetAnswer(answerID string) (*dto.AnswerDetailDTO, error)
}

type answerService struct {
	questionStore store.Store
	llm           GeminiLLMService
}

func NewAnswerService(questionStore store.Store, llm GeminiLLMService) AnswerService {
	return &answerService{questionStore: questionStore, llm: llm}
}

func (s *answerService) SubmitAnswer(ctx context.Context, questionID, answerText string) (*dto.SubmitAnswerResponse, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, fmt.Errorf("%w: no answer provided", errs.ErrValidation)
	}

	question, err := s.questionStore.LoadQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching question %s: %w", questionID, err)
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question %s", errs.ErrNotFound, questionID)
	}

	answer, err := s.questionStore.UpdateUserAnswer(questionID, answerText)
	if err != nil {
		return nil, fmt.Errorf("failed to record answer for question %s: %w", questionID, err)
	}

	// One blocking grading round trip. A grading failure leaves the answer
	// persisted without a mark and surfaces the error.
	grading, err := s.llm.GradeAnswer(ctx, GradingRequest{
		Question:    question.QuestionText,
		Explanation: question.Explanation,
		UserAnswer:  answerText,
	})
	if err != nil {
		log.Error().Err(err).Str("questionID", questionID).Str("answerID", answer.AnswerID).Msg("Grading failed")
		return nil, err
	}

	mark := int(grading.Score * 100)
	if err := s.questionStore.UpdateMark(answer.AnswerID, mark); err != nil {
		return nil, fmt.Errorf("failed to persist mark for answer %s: %w", answer.AnswerID, err)
	}

	log.Info().Str("questionID", questionID).Str("answerID", answer.AnswerID).Int("mark", mark).Msg("Answer graded")
	return &dto.SubmitAnswerResponse{
		AnswerID:   answer.AnswerID,
		Mark:       &mark,
		QuestionID: questionID,
	}, nil
}

func (s *answerService) GetAnswer(answerID string) (*dto.AnswerDetailDTO, error) {
	answer, err := s.questionStore.LoadAnswer(answerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching answer %s: %w", answerID, err)
	}
	if answer == nil {
		return nil, fmt.Errorf("%w: answer %s", errs.ErrNotFound, answerID)
	}

	question, err := s.questionStore.LoadQuestion(answer.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching question %s: %w", answer.QuestionID, err)
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question %s", errs.ErrNotFound, answer.QuestionID)
	}

	return &dto.AnswerDetailDTO{
		AnswerID:          answer.AnswerID,
		QuestionID:        answer.QuestionID,
		QuestionText:      question.QuestionText,
		UserAnswer:        answer.UserAnswer,
		Mark:              answer.Mark,
		SubmittedAt:       answer.SubmittedAt,
		AnswerExplanation: question.Explanation,
	}, nil
}
