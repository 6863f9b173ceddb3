package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"reqlens/internal/domain"
)

// MockRequirementRepo is a mock implementation of port.RequirementRepository.
type MockRequirementRepo struct {
	mock.Mock
}

func (m *MockRequirementRepo) CreateBatch(ctx context.Context, batch *domain.ImportBatch, reqs []domain.Requirement) error {
	args := m.Called(ctx, batch, reqs)
	return args.Error(0)
}

func (m *MockRequirementRepo) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportBatch), args.Error(1)
}

func (m *MockRequirementRepo) GetRequirement(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Requirement), args.Error(1)
}

func (m *MockRequirementRepo) ListRequirements(ctx context.Context, offset, limit int) ([]domain.Requirement, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Requirement), args.Int(1), args.Error(2)
}

func (m *MockRequirementRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Requirement, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Requirement), args.Error(1)
}
