package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/dto"
	"github.com/ptmai/recallify/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
	answerService   service.AnswerService
}

func NewQuestionController(questionService service.QuestionService, answerService service.AnswerService) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		answerService:   answerService,
	}
}

// GetQuestions godoc
// @Summary List a document's questions with their answered status
// @Tags Questions
// @Produce json
// @Param document_id path string true "Document ID"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid document ID format"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/{document_id}/questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	documentID, err := uuid.Parse(ctx.Param("document_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid document ID format"})
		return
	}

	questions, err := c.questionService.ListForDocument(documentID)
	if err != nil {
		log.Warn().Err(err).Str("documentID", documentID.String()).Msg("GetQuestions: service error")
		respondError(ctx, err, "Failed to retrieve questions")
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary Get a question with its reference explanation and answer history
// @Tags Questions
// @Produce json
// @Param question_id path string true "Question ID"
// @Success 200 {object} dto.QuestionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	questionID, err := uuid.Parse(ctx.Param("question_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	question, err := c.questionService.GetQuestion(questionID.String())
	if err != nil {
		log.Warn().Err(err).Str("questionID", questionID.String()).Msg("GetQuestion: service error")
		respondError(ctx, err, "Failed to retrieve question")
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SubmitAnswer godoc
// @Summary Submit an answer to a question and grade it
// @Description Creates an answer record, grades it against the reference explanation, and returns the resulting mark.
// @Tags Questions
// @Accept json
// @Produce json
// @Param question_id path string true "Question ID"
// @Param answer body dto.SubmitAnswerRequest true "Learner answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID, invalid JSON, or empty answer"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Grading failure"
// @Router /questions/{question_id}/answer [post]
func (c *QuestionController) SubmitAnswer(ctx *gin.Context) {
	questionID, err := uuid.Parse(ctx.Param("question_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid JSON data", Details: []string{err.Error()}})
		return
	}

	result, err := c.answerService.SubmitAnswer(ctx.Request.Context(), questionID.String(), req.Answer)
	if err != nil {
		log.Warn().Err(err).Str("questionID", questionID.String()).Msg("SubmitAnswer: service error")
		respondError(ctx, err, "Failed to submit answer")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
