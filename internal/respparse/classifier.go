// Package respparse turns free-form LLM analysis replies into structured
// analysis records. Replies drift between producers: some return JSON, some
// labeled prose, some a mix wrapped in Markdown fences. The pipeline is
// classify, extract with the matching strategy, fall back to the other
// strategy, validate.
package respparse

import (
	"encoding/json"
	"strings"

	"reqlens/internal/domain"
)

// prose headers that mark a reply as labeled prose when JSON parsing is off
// the table.
var proseSignals = []string{
	"QUALITY SCORE",
	"ISSUES FOUND",
	"IMPROVED REQUIREMENT",
}

// Classifier decides which extraction strategy fits a raw reply.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify strips Markdown fences, probes the remainder as JSON and falls
// back to scanning for labeled prose headers.
func (c *Classifier) Classify(reply string) domain.ResponseFormat {
	stripped := stripFences(reply)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(stripped), &obj); err == nil {
		if hasScoreKey(obj) {
			return domain.ResponseJSON
		}
	}

	upper := strings.ToUpper(reply)
	for _, h := range proseSignals {
		if strings.Contains(upper, h) {
			return domain.ResponseLabeledProse
		}
	}
	return domain.ResponseUnrecognized
}

// hasScoreKey reports whether any top-level key looks like a quality score.
func hasScoreKey(obj map[string]interface{}) bool {
	for k := range obj {
		if strings.Contains(normalizeKey(k), "score") {
			return true
		}
	}
	return false
}

// stripFences removes a leading Markdown code fence (with optional language
// tag) and its closing fence. Content that does not start with a fence is
// returned unchanged.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		trimmed = trimmed[i+1:]
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// normalizeKey lowercases a key and drops separators, so QualityScore,
// quality_score and "Quality Score" all compare equal.
func normalizeKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(k) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
