package store

import (
	"fmt"
	"time"

	"github.com/ptmai/recallify/config"
	"github.com/ptmai/recallify/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionRecord is the storage-level view of one generated question together
// with its current answer and mark. The json tags are the on-disk layout of
// the file backend; every file write is a full overwrite of the record.
type QuestionRecord struct {
	QuestionID    string  `json:"questionId"`
	DocumentID    string  `json:"documentId,omitempty"`
	QuestionText  string  `json:"question"`
	Explanation   string  `json:"explanation"`
	SourceContent string  `json:"sourceContent"`
	UserAnswer    *string `json:"userAnswer"`
	Mark          *int    `json:"mark"`
}

// AnswerRecord is one submitted answer. The relational backend keeps the full
// submission history; the file backend holds at most the current answer, in
// which case the answer id equals the question id.
type AnswerRecord struct {
	AnswerID    string    `json:"answerId"`
	QuestionID  string    `json:"questionId"`
	UserAnswer  string    `json:"userAnswer"`
	Mark        *int      `json:"mark"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Store is the persistence contract for question records. Loads return
// (nil, nil) when a record is absent rather than an error.
type Store interface {
	SaveQuestion(rec *QuestionRecord) error
	SaveQuestions(recs []*QuestionRecord) error
	LoadQuestion(questionID string) (*QuestionRecord, error)
	// ListQuestions returns all records, or only those of one document when
	// documentID is non-empty.
	ListQuestions(documentID string) ([]*QuestionRecord, error)
	DeleteQuestion(questionID string) error

	// UpdateUserAnswer records a new answer for a question and returns it.
	UpdateUserAnswer(questionID, answer string) (*AnswerRecord, error)
	// UpdateMark sets the mark of an answer. Marks outside {0, 50, 100} are
	// rejected and the stored record is left unchanged.
	UpdateMark(answerID string, mark int) error
	ListAnswers(questionID string) ([]*AnswerRecord, error)
	LoadAnswer(answerID string) (*AnswerRecord, error)
}

// ValidMark reports whether mark is one of the three persistable values.
func ValidMark(mark int) bool {
	return mark == 0 || mark == 50 || mark == 100
}

// New selects the store backend from the config.
func New(
	cfg *config.Config,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	documentRepo repository.DocumentRepository,
) (Store, error) {
	switch cfg.StoreBackend {
	case "file":
		log.Info().Str("dir", cfg.QuestionStore).Msg("Using file-backed question store")
		return NewFileStore(cfg.QuestionStore)
	case "database", "":
		return NewGormStore(questionRepo, answerRepo, documentRepo), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
