package docimport

import (
	"time"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
)

// Orchestrator runs format detection, dispatches to the matching parser and
// retries with the other parser when the first yields nothing. It performs
// no I/O and keeps no state, so independent documents may be imported
// concurrently.
type Orchestrator struct {
	detector   *Detector
	structured *StructuredParser
	generic    *GenericParser
}

// NewOrchestrator wires the import pipeline. Nil components select defaults
// sharing one default id matcher.
func NewOrchestrator(detector *Detector, structured *StructuredParser, generic *GenericParser) *Orchestrator {
	if detector == nil {
		detector = NewDetector(nil, nil)
	}
	if structured == nil {
		structured = NewStructuredParser()
	}
	if generic == nil {
		generic = NewGenericParser(nil)
	}
	return &Orchestrator{detector: detector, structured: structured, generic: generic}
}

// Import classifies the document and extracts requirement records. A
// mis-detected document never blocks the user: when the structured parser
// fails, the generic parser gets a try before the result is declared empty.
// The returned result always carries a guidance message, never a bare zero.
func (o *Orchestrator) Import(content domain.DocumentContent) domain.ImportResult {
	start := time.Now()

	det := o.detector.Detect(content)
	res := domain.ImportResult{
		Detection:  det,
		MethodUsed: domain.MethodNone,
		Records:    []domain.RequirementRecord{},
	}

	var parsed outcome.Outcome[[]domain.RequirementRecord]
	switch det.Format {
	case domain.FormatStructuredExport:
		parsed = o.structured.Parse(content)
		if parsed.Usable() {
			res.MethodUsed = domain.MethodStructuredParser
		} else if fallback := o.generic.Parse(content); fallback.Usable() {
			parsed = fallback
			res.MethodUsed = domain.MethodGenericParser
		}
	case domain.FormatGenericDocument:
		parsed = o.generic.Parse(content)
		if parsed.Usable() {
			res.MethodUsed = domain.MethodGenericParser
		}
	default:
		// Unknown: nothing to parse, guidance only.
	}

	if res.MethodUsed != domain.MethodNone {
		res.Records = parsed.Value
	}
	res.DurationMs = time.Since(start).Milliseconds()
	res.UserMessage = selectMessage(res)
	return res
}

// selectMessage picks one of the three message templates from the record
// count and the detected format.
func selectMessage(res domain.ImportResult) string {
	switch {
	case len(res.Records) > 0:
		return successMessage(len(res.Records), res.MethodUsed, res.Detection)
	case len(res.Detection.MatchedIDs) > 0:
		return formatIssueMessage(res.Detection)
	default:
		return unknownFormatMessage(res.Detection)
	}
}
