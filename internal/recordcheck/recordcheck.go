// Package recordcheck runs advisory quality rules over imported requirement
// records. Findings never block an import; they tell the caller what to fix
// in the source document before analysis.
package recordcheck

import (
	"reqlens/internal/domain"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one failed check for one record.
type Finding struct {
	RuleKey  string   `json:"rule_key"`
	RuleName string   `json:"rule_name"`
	Severity Severity `json:"severity"`
	RecordID string   `json:"record_id,omitempty"`
	Message  string   `json:"message"`
}

// Rule is a single quality check over a batch of records. Rules that only
// look at one record at a time still receive the whole batch so batch-level
// checks (duplicates) share the interface.
type Rule interface {
	RuleKey() string
	RuleName() string
	Severity() Severity
	Check(records []domain.RequirementRecord) []Finding
}

// Report is the outcome of running every registered rule over one batch.
type Report struct {
	Status   string    `json:"status"` // ok, warning, error
	Summary  Summary   `json:"summary"`
	Findings []Finding `json:"findings,omitempty"`
}

// Summary holds aggregate finding counts.
type Summary struct {
	Records  int `json:"records"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Registry maps rule keys to Rule implementations.
type Registry struct {
	rules map[string]Rule
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) {
	if _, ok := r.rules[rule.RuleKey()]; !ok {
		r.order = append(r.order, rule.RuleKey())
	}
	r.rules[rule.RuleKey()] = rule
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	return r.rules[key]
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.rules[key])
	}
	return out
}
