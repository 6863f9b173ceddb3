package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"reqlens/internal/domain"
	"reqlens/internal/port"
	"reqlens/internal/respparse"
)

// AnalysisService sends a stored requirement to an LLM provider and turns
// the reply into a persisted, structured analysis.
type AnalysisService interface {
	// Analyze runs one analysis. When the reply parses but lacks the
	// improved requirement text, the analysis is persisted as incomplete
	// and returned together with domain.ErrMissingImprovedText so the
	// caller can decide to re-request.
	Analyze(ctx context.Context, requirementID uuid.UUID) (*domain.Analysis, *domain.AnalysisRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]domain.Analysis, error)
}

type analysisService struct {
	provider     port.AnalysisProvider
	orchestrator *respparse.Orchestrator
	reqRepo      port.RequirementRepository
	analysisRepo port.AnalysisRepository
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(
	provider port.AnalysisProvider,
	orchestrator *respparse.Orchestrator,
	reqRepo port.RequirementRepository,
	analysisRepo port.AnalysisRepository,
) AnalysisService {
	return &analysisService{
		provider:     provider,
		orchestrator: orchestrator,
		reqRepo:      reqRepo,
		analysisRepo: analysisRepo,
	}
}

func (s *analysisService) Analyze(ctx context.Context, requirementID uuid.UUID) (*domain.Analysis, *domain.AnalysisRecord, error) {
	req, err := s.reqRepo.GetRequirement(ctx, requirementID)
	if err != nil {
		return nil, nil, err
	}

	reply, err := s.provider.Analyze(ctx, port.AnalysisRequest{
		RequirementID: req.ItemID,
		Name:          req.Name,
		Description:   req.Description,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("analysis.Analyze: provider: %w", err)
	}

	record, format, parseErr := s.orchestrator.Parse(reply.Text)
	if parseErr != nil && !errors.Is(parseErr, domain.ErrMissingImprovedText) {
		return nil, nil, fmt.Errorf("analysis.Analyze: %w", parseErr)
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("analysis.Analyze: marshaling record: %w", err)
	}

	status := domain.AnalysisStatusComplete
	if parseErr != nil {
		status = domain.AnalysisStatusIncomplete
		log.Printf("service.Analysis: requirement %s: reply parsed without improved text (provider %s)", req.ItemID, reply.Provider)
	}

	analysis := &domain.Analysis{
		RequirementID: requirementID,
		Provider:      reply.Provider,
		ModelUsed:     reply.ModelUsed,
		Status:        status,
		Format:        format,
		Record:        recordJSON,
		RawReply:      reply.Text,
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	return analysis, &record, parseErr
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.analysisRepo.GetByID(ctx, id)
}

func (s *analysisService) ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]domain.Analysis, error) {
	return s.analysisRepo.ListByRequirement(ctx, requirementID)
}
