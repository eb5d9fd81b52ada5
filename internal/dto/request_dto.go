package dto

// SubmitAnswerRequest is the body of POST /api/questions/{id}/answer/.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}
