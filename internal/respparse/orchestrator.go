package respparse

import (
	"fmt"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
)

// ExtractFunc is one extraction strategy: a pure function from the raw reply
// to an outcome. The orchestrator tries an ordered list of these until one
// returns something usable.
type ExtractFunc func(reply string) outcome.Outcome[domain.AnalysisRecord]

// Orchestrator chains the JSON and prose extractors behind the classifier.
type Orchestrator struct {
	classifier *Classifier
	json       ExtractFunc
	prose      ExtractFunc
}

// NewOrchestrator wires the response pipeline with the default classifier
// and extractors.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		classifier: NewClassifier(),
		json:       NewJSONExtractor().Extract,
		prose:      NewProseExtractor().Extract,
	}
}

// Parse extracts an AnalysisRecord from a raw reply. The classifier only
// picks the order of strategies: whichever goes first, the other still runs
// on Failure, because classification itself can be wrong on ambiguous input.
//
// A missing improved requirement after both strategies is the one hard
// validation failure: the partial record is still returned, together with
// domain.ErrMissingImprovedText, so the caller can decide to re-request the
// analysis.
func (o *Orchestrator) Parse(reply string) (domain.AnalysisRecord, domain.ResponseFormat, error) {
	format := o.classifier.Classify(reply)

	chain := []ExtractFunc{o.prose, o.json}
	if format == domain.ResponseJSON {
		chain = []ExtractFunc{o.json, o.prose}
	}

	var lastReason string
	for _, extract := range chain {
		result := extract(reply)
		if result.Failed() {
			lastReason = result.Reason
			continue
		}
		rec := result.Value
		if rec.ImprovedRequirementText == "" {
			return rec, format, domain.ErrMissingImprovedText
		}
		return rec, format, nil
	}

	return domain.AnalysisRecord{Hallucination: domain.FabricationUnknown}, format,
		fmt.Errorf("%w: %s", domain.ErrUnrecognizedReply, lastReason)
}
