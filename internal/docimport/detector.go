package docimport

import (
	"fmt"
	"strings"

	"reqlens/internal/domain"
)

// labelMatchThreshold is the minimum number of distinct known field labels
// that must appear before a document counts as a structured export.
const labelMatchThreshold = 3

// DefaultFieldLabels is the vocabulary of field labels emitted by the
// requirements-management tool's "All Data" export.
var DefaultFieldLabels = []string{
	"Item ID",
	"Global ID",
	"Name",
	"Title",
	"Requirement Description",
	"Description",
	"Validation Method/s",
	"Verification Method",
	"Status",
	"Priority",
	"Release",
	"Created Date",
	"Modified Date",
	"Assigned To",
}

// Detector classifies a document as a structured requirements export, a
// generic document containing requirement ids, or unknown. The label
// vocabulary and id matcher are explicit so tests can substitute their own.
type Detector struct {
	labels  []string
	matcher *IDMatcher
}

// NewDetector builds a Detector. Nil arguments select the defaults.
func NewDetector(labels []string, matcher *IDMatcher) *Detector {
	if labels == nil {
		labels = DefaultFieldLabels
	}
	if matcher == nil {
		matcher = MustNewIDMatcher()
	}
	return &Detector{labels: labels, matcher: matcher}
}

// Detect classifies the document and records every contributing signal in
// Reasons. The user-facing guidance message is built from those reasons, so
// they are part of the contract, not debug output.
func (d *Detector) Detect(content domain.DocumentContent) domain.DetectionResult {
	res := domain.DetectionResult{
		Format:  domain.FormatUnknown,
		Reasons: []string{},
	}

	res.MatchedIDs = d.matcher.Match(content.Text)
	for i, id := range res.MatchedIDs {
		if i >= 5 {
			res.Reasons = append(res.Reasons, fmt.Sprintf("and %d more requirement id(s)", len(res.MatchedIDs)-i))
			break
		}
		res.Reasons = append(res.Reasons, fmt.Sprintf("requirement id found: %s", id))
	}

	res.MatchedFieldLabels = d.matchLabels(content.Text, content.Tables)
	for _, l := range res.MatchedFieldLabels {
		res.Reasons = append(res.Reasons, fmt.Sprintf("field label found: %q", l))
	}

	hasTable, tableReason := d.findLabelTable(content.Tables)
	if hasTable {
		res.Reasons = append(res.Reasons, tableReason)
	}

	switch {
	case len(res.MatchedFieldLabels) >= labelMatchThreshold && hasTable:
		res.Format = domain.FormatStructuredExport
		res.Confidence = capped(float64(len(res.MatchedFieldLabels)) / 5.0)
	case len(res.MatchedFieldLabels) >= labelMatchThreshold:
		// Labels without a field/value table still signal an export,
		// just a damaged one. The structured parser gets first try and
		// the generic parser catches whatever it cannot read.
		res.Format = domain.FormatStructuredExport
		res.Confidence = capped(float64(len(res.MatchedFieldLabels)) / 10.0)
		res.Reasons = append(res.Reasons, "field labels present but no two-column field/value table found")
	case len(res.MatchedIDs) > 0:
		res.Format = domain.FormatGenericDocument
		res.Confidence = capped(float64(len(res.MatchedIDs)) / 10.0)
	default:
		res.Format = domain.FormatUnknown
		res.Confidence = 0
		res.Reasons = append(res.Reasons, "no field labels or requirement ids recognized")
	}

	return res
}

// matchLabels returns the distinct known labels that appear in label
// position, in vocabulary order. Label position means the first column of a
// table, or the start of a text line followed by a colon ("Name: ...").
// Bare occurrences of vocabulary words inside prose do not count: several of
// the default labels are ordinary English words.
func (d *Detector) matchLabels(text string, tables []domain.Table) []string {
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		head, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		seen[normalizeLabel(head)] = true
	}
	for _, t := range tables {
		for _, row := range t {
			if len(row) > 0 {
				seen[normalizeLabel(row[0])] = true
			}
		}
	}

	var found []string
	for _, label := range d.labels {
		if seen[normalizeLabel(label)] {
			found = append(found, label)
		}
	}
	return found
}

// findLabelTable looks for at least one table with exactly two columns whose
// first column contains a known field label.
func (d *Detector) findLabelTable(tables []domain.Table) (bool, string) {
	known := make(map[string]bool, len(d.labels))
	for _, l := range d.labels {
		known[normalizeLabel(l)] = true
	}

	for i, t := range tables {
		if len(t) == 0 {
			continue
		}
		twoCol := true
		labelHit := false
		for _, row := range t {
			if len(row) != 2 {
				twoCol = false
				break
			}
			if known[normalizeLabel(row[0])] {
				labelHit = true
			}
		}
		if twoCol && labelHit {
			return true, fmt.Sprintf("table %d is a two-column field/value block (%d rows)", i+1, len(t))
		}
	}
	return false, ""
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(s), ":"))
}

func capped(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
