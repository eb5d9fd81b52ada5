package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/dto"
	"github.com/ptmai/recallify/internal/service"
	"github.com/rs/zerolog/log"
)

type AnswerController struct {
	answerService service.AnswerService
}

func NewAnswerController(answerService service.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// GetAnswer godoc
// @Summary Get a submitted answer with its mark and reference explanation
// @Tags Answers
// @Produce json
// @Param answer_id path string true "Answer ID"
// @Success 200 {object} dto.AnswerDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid answer ID format"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Router /answers/{answer_id} [get]
func (c *AnswerController) GetAnswer(ctx *gin.Context) {
	answerID, err := uuid.Parse(ctx.Param("answer_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid answer ID format"})
		return
	}

	answer, err := c.answerService.GetAnswer(answerID.String())
	if err != nil {
		log.Warn().Err(err).Str("answerID", answerID.String()).Msg("GetAnswer: service error")
		respondError(ctx, err, "Failed to retrieve answer")
		return
	}
	ctx.JSON(http.StatusOK, answer)
}
