package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/model"
	"github.com/ptmai/recallify/internal/repository"
)

// GormStore maps question records onto the relational schema
// Document 1-N Question 1-N UserAnswer. Unlike the file backend it keeps the
// full answer history: UpdateUserAnswer appends a new UserAnswer row.
type GormStore struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	documentRepo repository.DocumentRepository
}

func NewGormStore(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	documentRepo repository.DocumentRepository,
) *GormStore {
	return &GormStore{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		documentRepo: documentRepo,
	}
}

func (s *GormStore) SaveQuestion(rec *QuestionRecord) error {
	documentID, err := uuid.Parse(rec.DocumentID)
	if err != nil {
		return fmt.Errorf("%w: question record needs a valid document id: %v", errs.ErrValidation, err)
	}

	var questionID uuid.UUID
	if rec.QuestionID != "" {
		questionID, err = uuid.Parse(rec.QuestionID)
		if err != nil {
			return fmt.Errorf("%w: invalid question id %q", errs.ErrValidation, rec.QuestionID)
		}
		existing, findErr := s.questionRepo.FindByID(questionID)
		if findErr != nil {
			return findErr
		}
		if existing != nil {
			existing.QuestionText = rec.QuestionText
			existing.AnswerExplanation = rec.Explanation
			return s.questionRepo.Update(existing)
		}
	}

	question := model.Question{
		ID:                questionID,
		DocumentID:        documentID,
		QuestionText:      rec.QuestionText,
		AnswerExplanation: rec.Explanation,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		return err
	}
	rec.QuestionID = question.ID.String()
	return nil
}

func (s *GormStore) SaveQuestions(recs []*QuestionRecord) error {
	for _, rec := range recs {
		if err := s.SaveQuestion(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *GormStore) LoadQuestion(questionID string) (*QuestionRecord, error) {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return nil, nil
	}
	question, err := s.questionRepo.FindByIDWithDocument(id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, nil
	}

	rec := &QuestionRecord{
		QuestionID:    question.ID.String(),
		DocumentID:    question.DocumentID.String(),
		QuestionText:  question.QuestionText,
		Explanation:   question.AnswerExplanation,
		SourceContent: question.Document.Content,
	}
	latest, err := s.answerRepo.FindLatestByQuestionID(id)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		rec.UserAnswer = &latest.UserAnswer
		rec.Mark = latest.Mark
	}
	return rec, nil
}

func (s *GormStore) ListQuestions(documentID string) ([]*QuestionRecord, error) {
	var questions []model.Question
	var err error
	if documentID == "" {
		questions, err = s.questionRepo.FindAll()
	} else {
		var docID uuid.UUID
		docID, err = uuid.Parse(documentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid document id %q", errs.ErrValidation, documentID)
		}
		questions, err = s.questionRepo.FindByDocumentID(docID)
	}
	if err != nil {
		return nil, err
	}

	recs := make([]*QuestionRecord, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		rec := &QuestionRecord{
			QuestionID:   q.ID.String(),
			DocumentID:   q.DocumentID.String(),
			QuestionText: q.QuestionText,
			Explanation:  q.AnswerExplanation,
		}
		latest, latestErr := s.answerRepo.FindLatestByQuestionID(q.ID)
		if latestErr != nil {
			return nil, latestErr
		}
		if latest != nil {
			rec.UserAnswer = &latest.UserAnswer
			rec.Mark = latest.Mark
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *GormStore) DeleteQuestion(questionID string) error {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return fmt.Errorf("%w: invalid question id %q", errs.ErrValidation, questionID)
	}
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return err
	}
	if question == nil {
		return fmt.Errorf("%w: question %s", errs.ErrNotFound, questionID)
	}
	// Rows are soft deleted, so the foreign key cascade does not fire;
	// remove the answer history explicitly.
	if err := s.answerRepo.DeleteByQuestionID(id); err != nil {
		return err
	}
	return s.questionRepo.Delete(id)
}

func (s *GormStore) UpdateUserAnswer(questionID, answer string) (*AnswerRecord, error) {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid question id %q", errs.ErrValidation, questionID)
	}
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question %s", errs.ErrNotFound, questionID)
	}

	userAnswer := model.UserAnswer{
		QuestionID: id,
		UserAnswer: answer,
	}
	if err := s.answerRepo.Create(&userAnswer); err != nil {
		return nil, err
	}
	return &AnswerRecord{
		AnswerID:    userAnswer.ID.String(),
		QuestionID:  questionID,
		UserAnswer:  userAnswer.UserAnswer,
		SubmittedAt: userAnswer.SubmittedAt,
	}, nil
}

func (s *GormStore) UpdateMark(answerID string, mark int) error {
	if !ValidMark(mark) {
		return fmt.Errorf("%w: mark must be 0, 50 or 100, got %d", errs.ErrValidation, mark)
	}
	id, err := uuid.Parse(answerID)
	if err != nil {
		return fmt.Errorf("%w: invalid answer id %q", errs.ErrValidation, answerID)
	}
	answer, err := s.answerRepo.FindByID(id)
	if err != nil {
		return err
	}
	if answer == nil {
		return fmt.Errorf("%w: answer %s", errs.ErrNotFound, answerID)
	}
	answer.Mark = &mark
	return s.answerRepo.Update(answer)
}

func (s *GormStore) ListAnswers(questionID string) ([]*AnswerRecord, error) {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid question id %q", errs.ErrValidation, questionID)
	}
	answers, err := s.answerRepo.FindByQuestionID(id)
	if err != nil {
		return nil, err
	}

	recs := make([]*AnswerRecord, 0, len(answers))
	for i := range answers {
		recs = append(recs, answerRecord(&answers[i]))
	}
	return recs, nil
}

func (s *GormStore) LoadAnswer(answerID string) (*AnswerRecord, error) {
	id, err := uuid.Parse(answerID)
	if err != nil {
		return nil, nil
	}
	answer, err := s.answerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, nil
	}
	return answerRecord(answer), nil
}

func answerRecord(answer *model.UserAnswer) *AnswerRecord {
	return &AnswerRecord{
		AnswerID:    answer.ID.String(),
		QuestionID:  answer.QuestionID.String(),
		UserAnswer:  answer.UserAnswer,
		Mark:        answer.Mark,
		SubmittedAt: answer.SubmittedAt,
	}
}
