package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"reqlens/internal/domain"
	"reqlens/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analyses (id, requirement_id, provider, model_used, status, format, record, raw_reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.RequirementID, a.Provider, a.ModelUsed, a.Status,
		a.Format, nullableJSON(a.Record), a.RawReply, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var a domain.Analysis
	err := r.db.GetContext(ctx, &a, "SELECT * FROM analyses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *analysisRepo) ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]domain.Analysis, error) {
	analyses := []domain.Analysis{}
	err := r.db.SelectContext(ctx, &analyses,
		"SELECT * FROM analyses WHERE requirement_id = $1 ORDER BY created_at DESC", requirementID)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.ListByRequirement: %w", err)
	}
	return analyses, nil
}
