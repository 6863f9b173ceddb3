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

type requirementRepo struct {
	db *sqlx.DB
}

// NewRequirementRepo creates a new PostgreSQL-backed RequirementRepository.
func NewRequirementRepo(db *sqlx.DB) port.RequirementRepository {
	return &requirementRepo{db: db}
}

// CreateBatch inserts the batch and its requirements in one transaction, so
// a failing insert never leaves a half-imported batch behind.
func (r *requirementRepo) CreateBatch(ctx context.Context, batch *domain.ImportBatch, reqs []domain.Requirement) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("requirementRepo.CreateBatch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	batch.ID = uuid.New()
	batch.CreatedAt = time.Now().UTC()
	batch.RecordCount = len(reqs)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_batches (id, source_name, format, method, record_count, duration_ms, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		batch.ID, batch.SourceName, batch.Format, batch.Method,
		batch.RecordCount, batch.DurationMs, batch.CreatedBy, batch.CreatedAt)
	if err != nil {
		return fmt.Errorf("requirementRepo.CreateBatch: insert batch: %w", err)
	}

	for i := range reqs {
		req := &reqs[i]
		req.ID = uuid.New()
		req.BatchID = batch.ID
		req.CreatedAt = batch.CreatedAt
		_, err = tx.ExecContext(ctx,
			`INSERT INTO requirements (id, batch_id, item_id, global_id, name, description, extra_fields, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			req.ID, req.BatchID, req.ItemID, req.GlobalID, req.Name,
			req.Description, nullableJSON(req.ExtraFields), req.CreatedAt)
		if err != nil {
			return fmt.Errorf("requirementRepo.CreateBatch: insert requirement %s: %w", req.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("requirementRepo.CreateBatch: commit: %w", err)
	}
	return nil
}

func (r *requirementRepo) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	err := r.db.GetContext(ctx, &batch, "SELECT * FROM import_batches WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("requirementRepo.GetBatch: %w", err)
	}
	return &batch, nil
}

func (r *requirementRepo) GetRequirement(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	var req domain.Requirement
	err := r.db.GetContext(ctx, &req, "SELECT * FROM requirements WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("requirementRepo.GetRequirement: %w", err)
	}
	return &req, nil
}

func (r *requirementRepo) ListRequirements(ctx context.Context, offset, limit int) ([]domain.Requirement, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM requirements"); err != nil {
		return nil, 0, fmt.Errorf("requirementRepo.ListRequirements: count: %w", err)
	}

	reqs := []domain.Requirement{}
	err := r.db.SelectContext(ctx, &reqs,
		"SELECT * FROM requirements ORDER BY created_at DESC, item_id OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("requirementRepo.ListRequirements: %w", err)
	}
	return reqs, total, nil
}

func (r *requirementRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Requirement, error) {
	reqs := []domain.Requirement{}
	err := r.db.SelectContext(ctx, &reqs,
		"SELECT * FROM requirements WHERE batch_id = $1 ORDER BY created_at, item_id", batchID)
	if err != nil {
		return nil, fmt.Errorf("requirementRepo.ListByBatch: %w", err)
	}
	return reqs, nil
}

// nullableJSON maps empty JSON payloads to NULL instead of an empty string,
// which jsonb columns reject.
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
