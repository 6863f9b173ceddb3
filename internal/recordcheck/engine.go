package recordcheck

import (
	"log"

	"reqlens/internal/docimport"
	"reqlens/internal/domain"
)

// Engine runs registered rules over record batches.
type Engine struct {
	registry *Registry
}

// NewEngine creates an Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// NewDefaultEngine creates an Engine with the built-in rule set.
func NewDefaultEngine(matcher *docimport.IDMatcher) *Engine {
	reg := NewRegistry()
	for _, rule := range BuiltinRules(matcher) {
		reg.Register(rule)
	}
	return &Engine{registry: reg}
}

// CheckBatch runs every rule over the records and aggregates the findings.
func (e *Engine) CheckBatch(records []domain.RequirementRecord) Report {
	report := Report{Status: "ok", Summary: Summary{Records: len(records)}}
	for _, rule := range e.registry.All() {
		for _, f := range rule.Check(records) {
			report.Findings = append(report.Findings, f)
			switch f.Severity {
			case SeverityError:
				report.Summary.Errors++
			case SeverityWarning:
				report.Summary.Warnings++
			}
		}
	}
	switch {
	case report.Summary.Errors > 0:
		report.Status = "error"
	case report.Summary.Warnings > 0:
		report.Status = "warning"
	}
	if report.Status != "ok" {
		log.Printf("recordcheck.Engine: batch of %d records checked: status=%s errors=%d warnings=%d",
			len(records), report.Status, report.Summary.Errors, report.Summary.Warnings)
	}
	return report
}
