package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"reqlens/internal/docimport"
	"reqlens/internal/domain"
	"reqlens/internal/port"
)

// ImportInput is the DTO for one document import.
type ImportInput struct {
	SourceName string
	Content    domain.DocumentContent
	CreatedBy  uuid.UUID
}

// ImportService runs the import pipeline and persists what it produces.
type ImportService interface {
	Import(ctx context.Context, input *ImportInput) (*domain.ImportResult, *domain.ImportBatch, error)
	ImportFromSource(ctx context.Context, projectID int, createdBy uuid.UUID) (*domain.ImportResult, *domain.ImportBatch, error)
	GetRequirement(ctx context.Context, id uuid.UUID) (*domain.Requirement, error)
	ListRequirements(ctx context.Context, offset, limit int) ([]domain.Requirement, int, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Requirement, error)
}

type importService struct {
	orchestrator *docimport.Orchestrator
	repo         port.RequirementRepository
	source       port.RequirementSource // nil when no external source is configured
}

// NewImportService creates an ImportService around a configured import
// orchestrator. source may be nil.
func NewImportService(orchestrator *docimport.Orchestrator, repo port.RequirementRepository, source port.RequirementSource) ImportService {
	return &importService{orchestrator: orchestrator, repo: repo, source: source}
}

// Import parses the extracted document content and stores the resulting
// records as one batch. An import that yields zero records is not an error:
// the result's user message explains what the detector saw.
func (s *importService) Import(ctx context.Context, input *ImportInput) (*domain.ImportResult, *domain.ImportBatch, error) {
	if input.Content.Text == "" && len(input.Content.Tables) == 0 {
		return nil, nil, domain.ErrEmptyDocument
	}

	result := s.orchestrator.Import(input.Content)

	batch := &domain.ImportBatch{
		SourceName: input.SourceName,
		Format:     result.Detection.Format,
		Method:     result.MethodUsed,
		DurationMs: result.DurationMs,
		CreatedBy:  input.CreatedBy,
	}

	reqs := make([]domain.Requirement, 0, len(result.Records))
	for _, rec := range result.Records {
		extra, err := marshalExtraFields(rec.ExtraFields)
		if err != nil {
			return nil, nil, fmt.Errorf("import.Import: marshaling extra fields for %s: %w", rec.ID, err)
		}
		reqs = append(reqs, domain.Requirement{
			ItemID:      rec.ID,
			GlobalID:    rec.GlobalID,
			Name:        rec.Name,
			Description: rec.Description,
			ExtraFields: extra,
		})
	}

	if err := s.repo.CreateBatch(ctx, batch, reqs); err != nil {
		return nil, nil, fmt.Errorf("import.Import: %w", err)
	}
	return &result, batch, nil
}

// ImportFromSource pulls the items of one external project and feeds them
// through the import pipeline as synthesized label/value tables, so source
// pulls and document uploads take the same path.
func (s *importService) ImportFromSource(ctx context.Context, projectID int, createdBy uuid.UUID) (*domain.ImportResult, *domain.ImportBatch, error) {
	if s.source == nil {
		return nil, nil, domain.ErrSourceNotConfigured
	}

	items, err := s.source.Items(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("import.ImportFromSource: %w", err)
	}

	content := domain.DocumentContent{}
	for _, item := range items {
		content.Tables = append(content.Tables, domain.Table{
			{"Item ID", item.DocumentKey},
			{"Global ID", item.GlobalID},
			{"Name", item.Name},
			{"Requirement Description", item.Description},
		})
	}

	return s.Import(ctx, &ImportInput{
		SourceName: fmt.Sprintf("jama:project-%d", projectID),
		Content:    content,
		CreatedBy:  createdBy,
	})
}

func (s *importService) GetRequirement(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	return s.repo.GetRequirement(ctx, id)
}

func (s *importService) ListRequirements(ctx context.Context, offset, limit int) ([]domain.Requirement, int, error) {
	return s.repo.ListRequirements(ctx, offset, limit)
}

func (s *importService) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Requirement, error) {
	return s.repo.ListByBatch(ctx, batchID)
}

func marshalExtraFields(fields []domain.ExtraField) (json.RawMessage, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	return json.Marshal(fields)
}
