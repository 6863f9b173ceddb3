package port

import (
	"context"

	"github.com/google/uuid"

	"reqlens/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// RequirementRepository defines the contract for import batch and
// requirement persistence.
type RequirementRepository interface {
	CreateBatch(ctx context.Context, batch *domain.ImportBatch, reqs []domain.Requirement) error
	GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error)
	GetRequirement(ctx context.Context, id uuid.UUID) (*domain.Requirement, error)
	ListRequirements(ctx context.Context, offset, limit int) ([]domain.Requirement, int, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Requirement, error)
}

// AnalysisRepository defines the contract for analysis persistence.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]domain.Analysis, error)
}
