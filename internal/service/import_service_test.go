package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reqlens/internal/docimport"
	"reqlens/internal/domain"
	"reqlens/internal/jama"
	"reqlens/internal/service"
	"reqlens/mocks"
)

func newImportOrchestrator(t *testing.T) *docimport.Orchestrator {
	matcher, err := docimport.NewIDMatcher(docimport.DefaultIDPatterns()...)
	require.NoError(t, err)
	return docimport.NewOrchestrator(
		docimport.NewDetector(docimport.DefaultFieldLabels, matcher),
		docimport.NewStructuredParser(),
		docimport.NewGenericParser(matcher),
	)
}

func structuredContent() domain.DocumentContent {
	return domain.DocumentContent{
		Tables: []domain.Table{
			{
				{"Item ID", "REQ-1"},
				{"Global ID", "GID-1"},
				{"Name", "Telemetry rate"},
				{"Requirement Description", "The system shall transmit telemetry at 1 Hz."},
			},
		},
	}
}

func TestImportService_Import(t *testing.T) {
	repo := new(mocks.MockRequirementRepo)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("*domain.ImportBatch"), mock.AnythingOfType("[]domain.Requirement")).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).(*domain.ImportBatch)
			reqs := args.Get(2).([]domain.Requirement)
			assert.Equal(t, "export.docx", batch.SourceName)
			assert.Equal(t, domain.FormatStructuredExport, batch.Format)
			assert.Equal(t, domain.MethodStructuredParser, batch.Method)
			require.Len(t, reqs, 1)
			assert.Equal(t, "REQ-1", reqs[0].ItemID)
			assert.Equal(t, "Telemetry rate", reqs[0].Name)
		}).
		Return(nil)

	svc := service.NewImportService(newImportOrchestrator(t), repo, nil)
	createdBy := uuid.New()
	result, batch, err := svc.Import(context.Background(), &service.ImportInput{
		SourceName: "export.docx",
		Content:    structuredContent(),
		CreatedBy:  createdBy,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, batch)
	assert.Equal(t, createdBy, batch.CreatedBy)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "REQ-1", result.Records[0].ID)
	repo.AssertExpectations(t)
}

func TestImportService_ImportEmptyDocument(t *testing.T) {
	repo := new(mocks.MockRequirementRepo)
	svc := service.NewImportService(newImportOrchestrator(t), repo, nil)

	_, _, err := svc.Import(context.Background(), &service.ImportInput{
		SourceName: "empty.docx",
		Content:    domain.DocumentContent{},
		CreatedBy:  uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportService_ImportZeroRecordsIsNotAnError(t *testing.T) {
	repo := new(mocks.MockRequirementRepo)
	repo.On("CreateBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := service.NewImportService(newImportOrchestrator(t), repo, nil)
	result, _, err := svc.Import(context.Background(), &service.ImportInput{
		SourceName: "notes.docx",
		Content:    domain.DocumentContent{Text: "Meeting notes with no requirement ids at all."},
		CreatedBy:  uuid.New(),
	})

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.NotEmpty(t, result.UserMessage)
}

func TestImportService_ImportFromSource(t *testing.T) {
	source := new(mocks.MockRequirementSource)
	source.On("Items", mock.Anything, 42).Return([]jama.Item{
		{
			ID:          1001,
			DocumentKey: "PROJ-REQ_RC-001",
			GlobalID:    "GID-1001",
			Name:        "Telemetry rate",
			Description: "The system shall transmit telemetry at 1 Hz.",
		},
	}, nil)

	repo := new(mocks.MockRequirementRepo)
	repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("*domain.ImportBatch"), mock.AnythingOfType("[]domain.Requirement")).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).(*domain.ImportBatch)
			reqs := args.Get(2).([]domain.Requirement)
			assert.Equal(t, "jama:project-42", batch.SourceName)
			require.Len(t, reqs, 1)
			assert.Equal(t, "PROJ-REQ_RC-001", reqs[0].ItemID)
			assert.Equal(t, "GID-1001", reqs[0].GlobalID)
		}).
		Return(nil)

	svc := service.NewImportService(newImportOrchestrator(t), repo, source)
	result, _, err := svc.ImportFromSource(context.Background(), 42, uuid.New())

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, domain.MethodStructuredParser, result.MethodUsed)
	source.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestImportService_ImportFromSourceNotConfigured(t *testing.T) {
	svc := service.NewImportService(newImportOrchestrator(t), new(mocks.MockRequirementRepo), nil)
	_, _, err := svc.ImportFromSource(context.Background(), 42, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSourceNotConfigured)
}
