package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reqlens/internal/domain"
	"reqlens/internal/middleware"
	"reqlens/internal/recordcheck"
	"reqlens/internal/service"
)

// ImportHandler handles document import endpoints.
type ImportHandler struct {
	importService service.ImportService
	checker       *recordcheck.Engine
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService, checker *recordcheck.Engine) *ImportHandler {
	return &ImportHandler{importService: importService, checker: checker}
}

type importRequest struct {
	SourceName string         `json:"source_name" binding:"required"`
	Text       string         `json:"text"`
	Tables     []domain.Table `json:"tables"`
}

type importResponse struct {
	Batch  *domain.ImportBatch  `json:"batch"`
	Result *domain.ImportResult `json:"result"`
	Check  recordcheck.Report   `json:"check"`
}

// Import handles POST /api/v1/imports. The body carries the pre-extracted
// document content; the response carries the batch plus the full import
// result, including the user message when nothing could be extracted.
func (h *ImportHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	result, batch, err := h.importService.Import(c.Request.Context(), &service.ImportInput{
		SourceName: req.SourceName,
		Content:    domain.DocumentContent{Text: req.Text, Tables: req.Tables},
		CreatedBy:  userID,
	})
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondCreated(c, importResponse{
		Batch:  batch,
		Result: result,
		Check:  h.checker.CheckBatch(result.Records),
	})
}

type jamaImportRequest struct {
	ProjectID int `json:"project_id" binding:"required"`
}

// ImportFromJama handles POST /api/v1/imports/jama. It pulls the project's
// items from Jama Connect and runs them through the import pipeline.
func (h *ImportHandler) ImportFromJama(c *gin.Context) {
	var req jamaImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	result, batch, err := h.importService.ImportFromSource(c.Request.Context(), req.ProjectID, userID)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondCreated(c, importResponse{
		Batch:  batch,
		Result: result,
		Check:  h.checker.CheckBatch(result.Records),
	})
}

// ListBatchRequirements handles GET /api/v1/imports/:id/requirements.
func (h *ImportHandler) ListBatchRequirements(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch id")
		return
	}

	reqs, err := h.importService.ListByBatch(c.Request.Context(), batchID)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondOK(c, reqs)
}
