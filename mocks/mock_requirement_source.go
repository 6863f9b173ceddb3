package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reqlens/internal/jama"
)

// MockRequirementSource is a mock implementation of port.RequirementSource.
type MockRequirementSource struct {
	mock.Mock
}

func (m *MockRequirementSource) Items(ctx context.Context, projectID int) ([]jama.Item, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jama.Item), args.Error(1)
}
