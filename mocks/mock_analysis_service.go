package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"reqlens/internal/domain"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, requirementID uuid.UUID) (*domain.Analysis, *domain.AnalysisRecord, error) {
	args := m.Called(ctx, requirementID)
	var analysis *domain.Analysis
	if args.Get(0) != nil {
		analysis = args.Get(0).(*domain.Analysis)
	}
	var record *domain.AnalysisRecord
	if args.Get(1) != nil {
		record = args.Get(1).(*domain.AnalysisRecord)
	}
	return analysis, record, args.Error(2)
}

func (m *MockAnalysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func (m *MockAnalysisService) ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]domain.Analysis, error) {
	args := m.Called(ctx, requirementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Analysis), args.Error(1)
}
