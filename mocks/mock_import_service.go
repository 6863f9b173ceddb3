package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"reqlens/internal/domain"
	"reqlens/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, input *service.ImportInput) (*domain.ImportResult, *domain.ImportBatch, error) {
	args := m.Called(ctx, input)
	var result *domain.ImportResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.ImportResult)
	}
	var batch *domain.ImportBatch
	if args.Get(1) != nil {
		batch = args.Get(1).(*domain.ImportBatch)
	}
	return result, batch, args.Error(2)
}

func (m *MockImportService) ImportFromSource(ctx context.Context, projectID int, createdBy uuid.UUID) (*domain.ImportResult, *domain.ImportBatch, error) {
	args := m.Called(ctx, projectID, createdBy)
	var result *domain.ImportResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.ImportResult)
	}
	var batch *domain.ImportBatch
	if args.Get(1) != nil {
		batch = args.Get(1).(*domain.ImportBatch)
	}
	return result, batch, args.Error(2)
}

func (m *MockImportService) GetRequirement(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Requirement), args.Error(1)
}

func (m *MockImportService) ListRequirements(ctx context.Context, offset, limit int) ([]domain.Requirement, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Requirement), args.Int(1), args.Error(2)
}

func (m *MockImportService) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Requirement, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Requirement), args.Error(1)
}
