package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reqlens/internal/docimport"
	"reqlens/internal/domain"
	"reqlens/internal/handler"
	"reqlens/internal/middleware"
	"reqlens/internal/recordcheck"
	"reqlens/internal/service"
	"reqlens/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authAs injects an authenticated user the way AuthMiddleware would.
func authAs(userID uuid.UUID, role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyRole, string(role))
	}
}

func testChecker(t *testing.T) *recordcheck.Engine {
	matcher, err := docimport.NewIDMatcher(docimport.DefaultIDPatterns()...)
	require.NoError(t, err)
	return recordcheck.NewDefaultEngine(matcher)
}

func importRouter(svc service.ImportService, checker *recordcheck.Engine, userID uuid.UUID, role domain.UserRole) *gin.Engine {
	h := handler.NewImportHandler(svc, checker)
	r := gin.New()
	grp := r.Group("/api/v1", authAs(userID, role))
	grp.POST("/imports", h.Import)
	grp.POST("/imports/jama", middleware.RequireRole(domain.RoleAdmin), h.ImportFromJama)
	grp.GET("/imports/:id/requirements", h.ListBatchRequirements)
	return r
}

func sampleResult() *domain.ImportResult {
	return &domain.ImportResult{
		Records: []domain.RequirementRecord{
			{ID: "REQ-1", Name: "Telemetry rate", Description: "The system shall transmit telemetry at 1 Hz."},
		},
		MethodUsed:  domain.MethodStructuredParser,
		Detection:   domain.DetectionResult{Format: domain.FormatStructuredExport, Confidence: 0.8},
		UserMessage: "Successfully imported 1 requirements using the structured table parser.",
	}
}

func TestImportHandler_Import(t *testing.T) {
	userID := uuid.New()
	batch := &domain.ImportBatch{ID: uuid.New(), SourceName: "export.docx", CreatedBy: userID}

	svc := new(mocks.MockImportService)
	svc.On("Import", mock.Anything, mock.MatchedBy(func(in *service.ImportInput) bool {
		return in.SourceName == "export.docx" && in.CreatedBy == userID
	})).Return(sampleResult(), batch, nil)

	r := importRouter(svc, testChecker(t), userID, domain.RoleMember)
	body, _ := json.Marshal(map[string]interface{}{
		"source_name": "export.docx",
		"tables": [][][]string{{
			{"Item ID", "REQ-1"},
			{"Name", "Telemetry rate"},
			{"Requirement Description", "The system shall transmit telemetry at 1 Hz."},
		}},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Batch  domain.ImportBatch  `json:"batch"`
			Result domain.ImportResult `json:"result"`
			Check  recordcheck.Report  `json:"check"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, batch.ID, resp.Data.Batch.ID)
	require.Len(t, resp.Data.Result.Records, 1)
	assert.Equal(t, "ok", resp.Data.Check.Status)
	svc.AssertExpectations(t)
}

func TestImportHandler_ImportMissingSourceName(t *testing.T) {
	svc := new(mocks.MockImportService)
	r := importRouter(svc, testChecker(t), uuid.New(), domain.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader([]byte(`{"text":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestImportHandler_ImportEmptyDocument(t *testing.T) {
	svc := new(mocks.MockImportService)
	svc.On("Import", mock.Anything, mock.Anything).Return(nil, nil, domain.ErrEmptyDocument)

	r := importRouter(svc, testChecker(t), uuid.New(), domain.RoleMember)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", bytes.NewReader([]byte(`{"source_name":"empty.docx"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_DOCUMENT")
}

func TestImportHandler_ImportFromJama(t *testing.T) {
	userID := uuid.New()
	batch := &domain.ImportBatch{ID: uuid.New(), SourceName: "jama:project-42"}

	svc := new(mocks.MockImportService)
	svc.On("ImportFromSource", mock.Anything, 42, userID).Return(sampleResult(), batch, nil)

	r := importRouter(svc, testChecker(t), userID, domain.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/jama", bytes.NewReader([]byte(`{"project_id":42}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "jama:project-42")
	svc.AssertExpectations(t)
}

func TestImportHandler_ImportFromJamaMemberForbidden(t *testing.T) {
	svc := new(mocks.MockImportService)

	r := importRouter(svc, testChecker(t), uuid.New(), domain.RoleMember)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/jama", bytes.NewReader([]byte(`{"project_id":42}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
	svc.AssertNotCalled(t, "ImportFromSource", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportHandler_ImportFromJamaNotConfigured(t *testing.T) {
	svc := new(mocks.MockImportService)
	svc.On("ImportFromSource", mock.Anything, 42, mock.Anything).Return(nil, nil, domain.ErrSourceNotConfigured)

	r := importRouter(svc, testChecker(t), uuid.New(), domain.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/jama", bytes.NewReader([]byte(`{"project_id":42}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SOURCE_NOT_CONFIGURED")
}

func TestImportHandler_ListBatchRequirements(t *testing.T) {
	batchID := uuid.New()
	svc := new(mocks.MockImportService)
	svc.On("ListByBatch", mock.Anything, batchID).Return([]domain.Requirement{
		{ID: uuid.New(), BatchID: batchID, ItemID: "REQ-1"},
	}, nil)

	r := importRouter(svc, testChecker(t), uuid.New(), domain.RoleMember)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/"+batchID.String()+"/requirements", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "REQ-1")
}

func TestImportHandler_ListBatchRequirementsBadID(t *testing.T) {
	r := importRouter(new(mocks.MockImportService), testChecker(t), uuid.New(), domain.RoleMember)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/imports/not-a-uuid/requirements", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}
