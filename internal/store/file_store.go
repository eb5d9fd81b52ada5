package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ptmai/recallify/internal/errs"
)

// FileStore keeps one JSON document per question, named {question_id}.json.
// It can represent only the current answer of a question, so re-answering
// overwrites and resets the mark.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create question store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(questionID string) string {
	return filepath.Join(s.dir, questionID+".json")
}

func (s *FileStore) SaveQuestion(rec *QuestionRecord) error {
	if rec.QuestionID == "" {
		return fmt.Errorf("%w: question record has no id", errs.ErrValidation)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode question %s: %w", rec.QuestionID, err)
	}
	if err := os.WriteFile(s.path(rec.QuestionID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write question %s: %w", rec.QuestionID, err)
	}
	return nil
}

func (s *FileStore) SaveQuestions(recs []*QuestionRecord) error {
	for _, rec := range recs {
		if err := s.SaveQuestion(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) LoadQuestion(questionID string) (*QuestionRecord, error) {
	data, err := os.ReadFile(s.path(questionID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read question %s: %w", questionID, err)
	}
	var rec QuestionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode question %s: %w", questionID, err)
	}
	return &rec, nil
}

func (s *FileStore) ListQuestions(documentID string) ([]*QuestionRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan question store: %w", err)
	}

	var recs []*QuestionRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		rec, err := s.LoadQuestion(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil || rec == nil {
			continue
		}
		if documentID != "" && rec.DocumentID != documentID {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].QuestionID < recs[j].QuestionID })
	return recs, nil
}

func (s *FileStore) DeleteQuestion(questionID string) error {
	err := os.Remove(s.path(questionID))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: question %s", errs.ErrNotFound, questionID)
	}
	return err
}

func (s *FileStore) UpdateUserAnswer(questionID, answer string) (*AnswerRecord, error) {
	rec, err := s.LoadQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: question %s", errs.ErrNotFound, questionID)
	}

	rec.UserAnswer = &answer
	rec.Mark = nil // the previous mark belongs to the overwritten answer
	if err := s.SaveQuestion(rec); err != nil {
		return nil, err
	}
	return &AnswerRecord{
		AnswerID:    questionID,
		QuestionID:  questionID,
		UserAnswer:  answer,
		SubmittedAt: time.Now(),
	}, nil
}

func (s *FileStore) UpdateMark(answerID string, mark int) error {
	if !ValidMark(mark) {
		return fmt.Errorf("%w: mark must be 0, 50 or 100, got %d", errs.ErrValidation, mark)
	}
	rec, err := s.LoadQuestion(answerID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: answer %s", errs.ErrNotFound, answerID)
	}
	if rec.UserAnswer == nil {
		return fmt.Errorf("%w: question %s has no answer to mark", errs.ErrValidation, answerID)
	}
	rec.Mark = &mark
	return s.SaveQuestion(rec)
}

func (s *FileStore) ListAnswers(questionID string) ([]*AnswerRecord, error) {
	rec, err := s.answerOf(questionID)
	if err != nil || rec == nil {
		return nil, err
	}
	return []*AnswerRecord{rec}, nil
}

func (s *FileStore) LoadAnswer(answerID string) (*AnswerRecord, error) {
	return s.answerOf(answerID)
}

func (s *FileStore) answerOf(questionID string) (*AnswerRecord, error) {
	rec, err := s.LoadQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UserAnswer == nil {
		return nil, nil
	}

	submitted := time.Time{}
	if info, statErr := os.Stat(s.path(questionID)); statErr == nil {
		submitted = info.ModTime()
	}
	return &AnswerRecord{
		AnswerID:    questionID,
		QuestionID:  questionID,
		UserAnswer:  *rec.UserAnswer,
		Mark:        rec.Mark,
		SubmittedAt: submitted,
	}, nil
}
