package port

import (
	"context"

	"reqlens/internal/jama"
)

// RequirementSource pulls requirement items from an external
// requirements-management system.
type RequirementSource interface {
	Items(ctx context.Context, projectID int) ([]jama.Item, error)
}
