package respparse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
)

// Canonical names used in MissingFields on both extraction strategies.
const (
	fieldOriginalScore     = "original_quality_score"
	fieldImprovedScore     = "improved_quality_score"
	fieldIssues            = "issues"
	fieldStrengths         = "strengths"
	fieldImprovedText      = "improved_requirement_text"
	fieldRecommendations   = "recommendations"
	fieldHallucination     = "hallucination"
	fieldOverallAssessment = "overall_assessment"
)

// alias tables mapping normalized JSON keys to record fields. Producers
// never agree on key names, so each field accepts a fixed family.
var (
	originalScoreKeys = []string{"originalqualityscore", "originalscore", "qualityscore", "score"}
	improvedScoreKeys = []string{"improvedqualityscore", "improvedscore", "newqualityscore"}
	issuesKeys        = []string{"issues", "issuesfound", "problems"}
	strengthsKeys     = []string{"strengths"}
	improvedTextKeys  = []string{"improvedrequirement", "improvedrequirementtext", "rewrittenrequirement", "improvedtext"}
	recommendKeys     = []string{"recommendations", "suggestions"}
	hallucinationKeys = []string{"hallucination", "hallucinationcheck", "hallucinationflag", "fabrication", "fabricationcheck"}
	overallKeys       = []string{"overallassessment", "assessment", "summary", "overall"}
)

// JSONExtractor maps a JSON analysis reply onto an AnalysisRecord. Malformed
// JSON is a Failure, never a panic, so the orchestrator can degrade to prose
// extraction.
type JSONExtractor struct{}

// NewJSONExtractor creates a JSONExtractor.
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// Extract parses the (fence-stripped) reply as one JSON object and maps its
// keys case-insensitively through the alias tables. Absent keys are recorded
// in MissingFields.
func (e *JSONExtractor) Extract(reply string) outcome.Outcome[domain.AnalysisRecord] {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(stripFences(reply)), &obj); err != nil {
		return outcome.Failure[domain.AnalysisRecord](fmt.Sprintf("malformed JSON: %v", err))
	}

	fields := make(map[string]interface{}, len(obj))
	for k, v := range obj {
		fields[normalizeKey(k)] = v
	}

	rec := domain.AnalysisRecord{Hallucination: domain.FabricationUnknown}
	var missing []string
	matched := 0

	if v, ok := lookupInt(fields, originalScoreKeys); ok {
		rec.OriginalQualityScore = &v
		matched++
	} else {
		missing = append(missing, fieldOriginalScore)
	}
	if v, ok := lookupInt(fields, improvedScoreKeys); ok {
		rec.ImprovedQualityScore = &v
		matched++
	}
	if v, ok := lookup(fields, issuesKeys); ok {
		rec.Issues = toIssues(v)
		matched++
	} else {
		missing = append(missing, fieldIssues)
	}
	if v, ok := lookup(fields, strengthsKeys); ok {
		rec.Strengths = toStrings(v)
		matched++
	} else {
		missing = append(missing, fieldStrengths)
	}
	if v, ok := lookupString(fields, improvedTextKeys); ok && strings.TrimSpace(v) != "" {
		rec.ImprovedRequirementText = strings.TrimSpace(v)
		matched++
	} else {
		missing = append(missing, fieldImprovedText)
	}
	if v, ok := lookup(fields, recommendKeys); ok {
		rec.Recommendations = toRecommendations(v)
		matched++
	} else {
		missing = append(missing, fieldRecommendations)
	}
	if v, ok := lookupString(fields, hallucinationKeys); ok {
		rec.Hallucination = parseHallucinationToken(v)
		matched++
	} else {
		missing = append(missing, fieldHallucination)
	}
	if v, ok := lookupString(fields, overallKeys); ok {
		rec.OverallAssessment = strings.TrimSpace(v)
		matched++
	} else {
		missing = append(missing, fieldOverallAssessment)
	}

	if matched == 0 {
		return outcome.Failure[domain.AnalysisRecord]("JSON object has no recognizable analysis keys")
	}
	rec.MissingFields = missing
	if len(missing) > 0 {
		return outcome.Partial(rec, missing)
	}
	return outcome.Success(rec)
}

func lookup(fields map[string]interface{}, aliases []string) (interface{}, bool) {
	for _, a := range aliases {
		if v, ok := fields[a]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupString(fields map[string]interface{}, aliases []string) (string, bool) {
	v, ok := lookup(fields, aliases)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func lookupInt(fields map[string]interface{}, aliases []string) (int, bool) {
	v, ok := lookup(fields, aliases)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// toIssues accepts either a list of objects or a list of plain strings.
func toIssues(v interface{}) []domain.Issue {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	issues := make([]domain.Issue, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			issues = append(issues, domain.Issue{Description: strings.TrimSpace(it)})
		case map[string]interface{}:
			m := normalizeKeys(it)
			issues = append(issues, domain.Issue{
				Category:    firstString(m, "category", "type"),
				Severity:    firstString(m, "severity"),
				Description: firstString(m, "description", "issue", "text"),
				Fix:         firstString(m, "fix", "suggestedfix", "suggestededit"),
			})
		}
	}
	return issues
}

func toRecommendations(v interface{}) []domain.Recommendation {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	recs := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			recs = append(recs, domain.Recommendation{Description: strings.TrimSpace(it)})
		case map[string]interface{}:
			m := normalizeKeys(it)
			recs = append(recs, domain.Recommendation{
				Category:        firstString(m, "category", "type"),
				Description:     firstString(m, "description", "recommendation", "text"),
				RationaleOrEdit: firstString(m, "rationale", "suggestededit", "rationaleoredit", "edit"),
			})
		}
	}
	return recs
}

func toStrings(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func normalizeKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[normalizeKey(k)] = v
	}
	return out
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// parseHallucinationToken maps the literal self-report tokens onto the flag.
// Anything outside the two known tokens is Unknown.
func parseHallucinationToken(s string) domain.HallucinationFlag {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "NO_FABRICATION"):
		return domain.NoFabrication
	case strings.Contains(upper, "FABRICATED_DETAILS"):
		return domain.FabricatedDetails
	default:
		return domain.FabricationUnknown
	}
}
