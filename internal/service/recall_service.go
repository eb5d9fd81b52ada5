package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/config"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/pdf"
	"github.com/ptmai/recallify/internal/repository"
	"github.com/ptmai/recallify/internal/store"
	"github.com/rs/zerolog/log"
)

// ContentExtractor is the read-only PDF extraction step of the pipeline.
type ContentExtractor interface {
	Extract(filePath string, pages []int) (*pdf.Result, error)
}

// RecallService drives the content pipeline for one document:
// extract, persist text/metadata, generate questions, generate explanations,
// persist one question record per pair. The sequence is linear and each model
// call is one blocking round trip; the first failure aborts the run. A
// document whose generation step fails keeps its extracted text with no
// questions attached.
type RecallService interface {
	ProcessDocument(ctx context.Context, documentID uuid.UUID) ([]*store.QuestionRecord, error)
}

type recallService struct {
	documentRepo  repository.DocumentRepository
	extractor     ContentExtractor
	llm           GeminiLLMService
	questionStore store.Store
	cfg           *config.Config
}

func NewRecallService(
	documentRepo repository.DocumentRepository,
	extractor ContentExtractor,
	llm GeminiLLMService,
	questionStore store.Store,
	cfg *config.Config,
) RecallService {
	return &recallService{
		documentRepo:  documentRepo,
		extractor:     extractor,
		llm:           llm,
		questionStore: questionStore,
		cfg:           cfg,
	}
}

func (s *recallService) ProcessDocument(ctx context.Context, documentID uuid.UUID) ([]*store.QuestionRecord, error) {
	document, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", documentID, err)
	}
	if document == nil {
		return nil, fmt.Errorf("%w: document %s", errs.ErrNotFound, documentID)
	}

	result, err := s.extractor.Extract(document.FilePath, nil)
	if err != nil {
		log.Error().Err(err).Str("documentID", documentID.String()).Str("file", document.FilePath).Msg("PDF extraction failed")
		return nil, err
	}

	// The one post-upload mutation: fill in extracted text and metadata.
	document.Content = result.Content
	document.PageCount = result.Metadata.NumPages
	if result.Metadata.Title != nil {
		document.Title = *result.Metadata.Title
	}
	if result.Metadata.Author != nil {
		document.Author = result.Metadata.Author
	}
	if result.Metadata.CreatedDate != nil {
		document.CreatedDate = result.Metadata.CreatedDate
	}
	if err := s.documentRepo.Update(document); err != nil {
		return nil, fmt.Errorf("failed to save extracted content for document %s: %w", documentID, err)
	}

	title := document.Title
	if title == "" {
		title = "Untitled Document"
	}

	questions, err := s.llm.GenerateQuestions(ctx, QuestionGenRequest{
		DocumentContent: document.Content,
		DocumentTitle:   title,
		Count:           s.cfg.QuestionCount,
	})
	if err != nil {
		log.Error().Err(err).Str("documentID", documentID.String()).Msg("Question generation failed")
		return nil, err
	}

	explanations, err := s.llm.GenerateExplanations(ctx, ExplanationGenRequest{
		DocumentContent: document.Content,
		DocumentTitle:   title,
		Questions:       questions,
	})
	if err != nil {
		log.Error().Err(err).Str("documentID", documentID.String()).Msg("Explanation generation failed")
		return nil, err
	}

	records := make([]*store.QuestionRecord, 0, len(questions))
	for i := range questions {
		records = append(records, &store.QuestionRecord{
			QuestionID:    uuid.NewString(),
			DocumentID:    documentID.String(),
			QuestionText:  questions[i],
			Explanation:   explanations[i],
			SourceContent: document.Content,
		})
	}
	if err := s.questionStore.SaveQuestions(records); err != nil {
		return nil, fmt.Errorf("failed to persist generated questions for document %s: %w", documentID, err)
	}

	log.Info().Str("documentID", documentID.String()).Int("questions", len(records)).Msg("Document processed")
	return records, nil
}
