package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reqlens/internal/domain"
	"reqlens/internal/provider"
	"reqlens/internal/service"
)

// AnalysisHandler handles requirement analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

type analyzeResponse struct {
	Analysis *domain.Analysis       `json:"analysis"`
	Record   *domain.AnalysisRecord `json:"record"`
}

// Analyze handles POST /api/v1/requirements/:id/analyze. A reply that parses
// but lacks the improved requirement text is persisted as incomplete and
// returned with 422 so the caller can re-request.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	reqID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid requirement id")
		return
	}

	analysis, record, err := h.analysisService.Analyze(c.Request.Context(), reqID)
	if err != nil {
		if errors.Is(err, domain.ErrMissingImprovedText) {
			c.JSON(http.StatusUnprocessableEntity, APIResponse{
				Success: false,
				Data:    analyzeResponse{Analysis: analysis, Record: record},
				Error: &APIError{
					Code:    "MISSING_IMPROVED_REQUIREMENT",
					Message: "analysis reply did not include the improved requirement text",
				},
			})
			return
		}
		var rateLimitErr *provider.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", strconv.Itoa(int(rateLimitErr.RetryAfter.Seconds())))
			RespondError(c, http.StatusTooManyRequests, "RATE_LIMITED", rateLimitErr.Error())
			return
		}
		if errors.Is(err, domain.ErrUnrecognizedReply) {
			RespondError(c, http.StatusUnprocessableEntity, "UNRECOGNIZED_REPLY", "analysis reply matched no known format")
			return
		}
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondCreated(c, analyzeResponse{Analysis: analysis, Record: record})
}

// Get handles GET /api/v1/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis id")
		return
	}

	analysis, err := h.analysisService.GetByID(c.Request.Context(), id)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondOK(c, analysis)
}

// ListByRequirement handles GET /api/v1/requirements/:id/analyses.
func (h *AnalysisHandler) ListByRequirement(c *gin.Context) {
	reqID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid requirement id")
		return
	}

	analyses, err := h.analysisService.ListByRequirement(c.Request.Context(), reqID)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondOK(c, analyses)
}
