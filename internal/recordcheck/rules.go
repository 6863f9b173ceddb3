package recordcheck

import (
	"fmt"
	"strings"

	"reqlens/internal/docimport"
	"reqlens/internal/domain"
)

// requiredFieldRule checks that a field is not empty on every record.
type requiredFieldRule struct {
	ruleKey  string
	ruleName string
	field    string
	severity Severity
	extract  func(*domain.RequirementRecord) string
}

func (r *requiredFieldRule) RuleKey() string    { return r.ruleKey }
func (r *requiredFieldRule) RuleName() string   { return r.ruleName }
func (r *requiredFieldRule) Severity() Severity { return r.severity }

func (r *requiredFieldRule) Check(records []domain.RequirementRecord) []Finding {
	var out []Finding
	for i := range records {
		rec := &records[i]
		if strings.TrimSpace(r.extract(rec)) != "" {
			continue
		}
		out = append(out, Finding{
			RuleKey:  r.ruleKey,
			RuleName: r.ruleName,
			Severity: r.severity,
			RecordID: rec.ID,
			Message:  fmt.Sprintf("%s: %s is missing or empty", r.ruleName, r.field),
		})
	}
	return out
}

// duplicateIDRule flags records that share an id within one batch.
type duplicateIDRule struct{}

func (duplicateIDRule) RuleKey() string    { return "batch.duplicate_id" }
func (duplicateIDRule) RuleName() string   { return "Duplicate Requirement ID" }
func (duplicateIDRule) Severity() Severity { return SeverityError }

func (d duplicateIDRule) Check(records []domain.RequirementRecord) []Finding {
	seen := make(map[string]int)
	var out []Finding
	for i := range records {
		id := records[i].ID
		seen[id]++
		if seen[id] == 2 {
			out = append(out, Finding{
				RuleKey:  d.RuleKey(),
				RuleName: d.RuleName(),
				Severity: d.Severity(),
				RecordID: id,
				Message:  fmt.Sprintf("%s: %s appears more than once in this batch", d.RuleName(), id),
			})
		}
	}
	return out
}

// idFormatRule flags record ids the id matcher does not recognize. Records
// from the structured parser carry whatever the Item ID cell held, which may
// not be an id token at all.
type idFormatRule struct {
	matcher *docimport.IDMatcher
}

func (idFormatRule) RuleKey() string    { return "record.id_format" }
func (idFormatRule) RuleName() string   { return "Unrecognized Requirement ID Format" }
func (idFormatRule) Severity() Severity { return SeverityWarning }

func (r idFormatRule) Check(records []domain.RequirementRecord) []Finding {
	var out []Finding
	for i := range records {
		id := records[i].ID
		if len(r.matcher.Match(id)) > 0 {
			continue
		}
		out = append(out, Finding{
			RuleKey:  r.RuleKey(),
			RuleName: r.RuleName(),
			Severity: r.Severity(),
			RecordID: id,
			Message:  fmt.Sprintf("%s: %q does not match any known id pattern", r.RuleName(), id),
		})
	}
	return out
}

// BuiltinRules returns the default rule set, using the given matcher for id
// format checks.
func BuiltinRules(matcher *docimport.IDMatcher) []Rule {
	return []Rule{
		&requiredFieldRule{
			ruleKey: "record.name", ruleName: "Required: Name", field: "name",
			severity: SeverityWarning,
			extract:  func(r *domain.RequirementRecord) string { return r.Name },
		},
		&requiredFieldRule{
			ruleKey: "record.description", ruleName: "Required: Description", field: "description",
			severity: SeverityWarning,
			extract:  func(r *domain.RequirementRecord) string { return r.Description },
		},
		duplicateIDRule{},
		idFormatRule{matcher: matcher},
	}
}
