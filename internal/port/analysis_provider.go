package port

import "context"

// AnalysisRequest carries one requirement to be analyzed by an LLM provider.
type AnalysisRequest struct {
	RequirementID string
	Name          string
	Description   string
}

// AnalysisReply is the raw, fully received reply from a provider. Extraction
// into a structured record happens downstream in respparse.
type AnalysisReply struct {
	Text       string
	Provider   string
	ModelUsed  string
	PromptUsed string
}

// AnalysisProvider abstracts an LLM quality-analysis backend.
type AnalysisProvider interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisReply, error)
}
