package controller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ptmai/recallify/config"
	"github.com/ptmai/recallify/internal/dto"
	"github.com/ptmai/recallify/internal/service"
	"github.com/rs/zerolog/log"
)

type DocumentController struct {
	documentService service.DocumentService
	recallService   service.RecallService
	cfg             *config.Config
}

func NewDocumentController(documentService service.DocumentService, recallService service.RecallService, cfg *config.Config) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		recallService:   recallService,
		cfg:             cfg,
	}
}

// UploadDocument godoc
// @Summary Upload a PDF and generate active recall questions
// @Description Accepts a PDF upload, extracts its text, and synchronously generates questions with reference explanations.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} dto.UploadDocumentResponse
// @Failure 400 {object} dto.ErrorResponse "Missing file or non-PDF upload"
// @Failure 500 {object} dto.ErrorResponse "Pipeline failure"
// @Router /documents/upload [post]
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No file uploaded"})
		return
	}

	filename := filepath.Base(file.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Only PDF files are supported"})
		return
	}

	if err := os.MkdirAll(c.cfg.UploadDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", c.cfg.UploadDir).Msg("Failed to create upload directory")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to store upload", Details: []string{err.Error()}})
		return
	}
	dst := filepath.Join(c.cfg.UploadDir, filename)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		log.Error().Err(err).Str("path", dst).Msg("Failed to save uploaded file")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to store upload", Details: []string{err.Error()}})
		return
	}

	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	document, err := c.documentService.CreateDocument(title, dst)
	if err != nil {
		respondError(ctx, err, "Failed to create document")
		return
	}

	log.Info().Str("documentID", document.ID.String()).Str("file", filename).Msg("Processing uploaded document")
	records, err := c.recallService.ProcessDocument(ctx.Request.Context(), document.ID)
	if err != nil {
		log.Error().Err(err).Str("documentID", document.ID.String()).Msg("Document pipeline failed")
		respondError(ctx, err, "Failed to process document")
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadDocumentResponse{
		DocumentID:     document.ID.String(),
		Title:          document.Title,
		QuestionsCount: len(records),
	})
}

// GetDocuments godoc
// @Summary List uploaded documents
// @Tags Documents
// @Produce json
// @Success 200 {object} dto.DocumentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /documents [get]
func (c *DocumentController) GetDocuments(ctx *gin.Context) {
	documents, err := c.documentService.ListDocuments()
	if err != nil {
		log.Error().Err(err).Msg("GetDocuments: service error")
		respondError(ctx, err, "Failed to retrieve documents")
		return
	}
	ctx.JSON(http.StatusOK, documents)
}

// GetDocument godoc
// @Summary Get a document with its question list
// @Tags Documents
// @Produce json
// @Param document_id path string true "Document ID"
// @Success 200 {object} dto.DocumentDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid document ID format"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/{document_id} [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	documentID, err := uuid.Parse(ctx.Param("document_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid document ID format"})
		return
	}

	document, err := c.documentService.GetDocument(documentID)
	if err != nil {
		log.Warn().Err(err).Str("documentID", documentID.String()).Msg("GetDocument: service error")
		respondError(ctx, err, "Failed to retrieve document")
		return
	}
	ctx.JSON(http.StatusOK, document)
}
