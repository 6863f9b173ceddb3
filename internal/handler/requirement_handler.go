package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reqlens/internal/domain"
	"reqlens/internal/export"
	"reqlens/internal/service"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// RequirementHandler handles requirement read and export endpoints.
type RequirementHandler struct {
	importService service.ImportService
}

// NewRequirementHandler creates a new RequirementHandler.
func NewRequirementHandler(importService service.ImportService) *RequirementHandler {
	return &RequirementHandler{importService: importService}
}

// List handles GET /api/v1/requirements.
func (h *RequirementHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	reqs, total, err := h.importService.ListRequirements(c.Request.Context(), offset, limit)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondPaginated(c, reqs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/requirements/:id.
func (h *RequirementHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid requirement id")
		return
	}

	req, err := h.importService.GetRequirement(c.Request.Context(), id)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondOK(c, req)
}

// ExportCSV handles GET /api/v1/requirements/export.csv.
func (h *RequirementHandler) ExportCSV(c *gin.Context) {
	records, err := h.exportRecords(c)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	filename := fmt.Sprintf("requirements_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.NewCSVWriter(c.Writer).WriteRecords(records); err != nil {
		log.Printf("handler.Requirement: writing csv export: %v", err)
	}
}

// ExportXLSX handles GET /api/v1/requirements/export.xlsx.
func (h *RequirementHandler) ExportXLSX(c *gin.Context) {
	records, err := h.exportRecords(c)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	filename := fmt.Sprintf("requirements_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.WriteXLSX(c.Writer, records); err != nil {
		log.Printf("handler.Requirement: writing xlsx export: %v", err)
	}
}

// exportRecords loads the requirements to export, optionally scoped to one
// batch via the batch_id query parameter.
func (h *RequirementHandler) exportRecords(c *gin.Context) ([]domain.RequirementRecord, error) {
	var reqs []domain.Requirement
	if raw := c.Query("batch_id"); raw != "" {
		batchID, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		reqs, err = h.importService.ListByBatch(c.Request.Context(), batchID)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		reqs, _, err = h.importService.ListRequirements(c.Request.Context(), 0, maxPageLimit)
		if err != nil {
			return nil, err
		}
	}

	records := make([]domain.RequirementRecord, 0, len(reqs))
	for i := range reqs {
		rec, err := reqs[i].Record()
		if err != nil {
			return nil, fmt.Errorf("handler.Requirement: decoding extra fields for %s: %w", reqs[i].ItemID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return offset, limit
}
