package dto

import "time"

// UploadDocumentResponse is returned after the full pipeline ran for an upload.
type UploadDocumentResponse struct {
	DocumentID     string `json:"document_id"`
	Title          string `json:"title"`
	QuestionsCount int    `json:"questions_count"`
}

// DocumentSummaryDTO is one entry of the document listing.
type DocumentSummaryDTO struct {
	DocumentID     string    `json:"document_id"`
	Title          string    `json:"title"`
	UploadedAt     time.Time `json:"uploaded_at"`
	PageCount      int       `json:"page_count"`
	QuestionsCount int       `json:"questions_count"`
}

type DocumentListResponse struct {
	Documents []DocumentSummaryDTO `json:"documents"`
}

// QuestionSummaryDTO lists a question id/text pair on the document detail.
type QuestionSummaryDTO struct {
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
}

type DocumentDetailDTO struct {
	DocumentID  string               `json:"document_id"`
	Title       string               `json:"title"`
	UploadedAt  time.Time            `json:"uploaded_at"`
	PageCount   int                  `json:"page_count"`
	Author      *string              `json:"author"`
	CreatedDate *time.Time           `json:"created_date"`
	Questions   []QuestionSummaryDTO `json:"questions"`
}

// QuestionStatusDTO carries the answered flag and last mark per question.
type QuestionStatusDTO struct {
	QuestionID      string `json:"question_id"`
	QuestionText    string `json:"question_text"`
	HasBeenAnswered bool   `json:"has_been_answered"`
	LastMark        *int   `json:"last_mark"`
}

type QuestionListResponse struct {
	Questions []QuestionStatusDTO `json:"questions"`
}

// AnswerSummaryDTO is one submitted answer in a question's history.
type AnswerSummaryDTO struct {
	AnswerID    string    `json:"answer_id"`
	UserAnswer  string    `json:"user_answer"`
	Mark        *int      `json:"mark"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type QuestionDetailDTO struct {
	QuestionID        string             `json:"question_id"`
	DocumentID        string             `json:"document_id"`
	DocumentTitle     string             `json:"document_title"`
	QuestionText      string             `json:"question_text"`
	AnswerExplanation string             `json:"answer_explanation"`
	UserAnswers       []AnswerSummaryDTO `json:"user_answers"`
}

// SubmitAnswerResponse is returned after an answer was created and graded.
type SubmitAnswerResponse struct {
	AnswerID   string `json:"answer_id"`
	Mark       *int   `json:"mark"`
	QuestionID string `json:"question_id"`
}

type AnswerDetailDTO struct {
	AnswerID          string    `json:"answer_id"`
	QuestionID        string    `json:"question_id"`
	QuestionText      string    `json:"question_text"`
	UserAnswer        string    `json:"user_answer"`
	Mark              *int      `json:"mark"`
	SubmittedAt       time.Time `json:"submitted_at"`
	AnswerExplanation string    `json:"answer_explanation"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
