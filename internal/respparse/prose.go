package respparse

import (
	"regexp"
	"strconv"
	"strings"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
)

// maxSectionBytes bounds the text handed to sub-extraction for one section.
// A reply that never emits another header cannot drag a single section scan
// into pathological territory.
const maxSectionBytes = 32 * 1024

// sectionKind identifies one labeled prose section.
type sectionKind int

const (
	secOriginalScore sectionKind = iota
	secGenericScore
	secImprovedScore
	secIssues
	secStrengths
	secImprovedText
	secRecommendations
	secHallucination
	secOverall
)

// header tokens, longest first so "IMPROVED REQUIREMENT QUALITY SCORE" never
// matches as "IMPROVED REQUIREMENT" and "ORIGINAL ... QUALITY SCORE" never
// matches as "QUALITY SCORE". Wording varies across producers.
var proseHeaders = []struct {
	token string
	kind  sectionKind
}{
	{"ORIGINAL REQUIREMENT QUALITY SCORE", secOriginalScore},
	{"IMPROVED REQUIREMENT QUALITY SCORE", secImprovedScore},
	{"ORIGINAL QUALITY SCORE", secOriginalScore},
	{"IMPROVED QUALITY SCORE", secImprovedScore},
	{"REWRITTEN REQUIREMENT", secImprovedText},
	{"IMPROVED REQUIREMENT", secImprovedText},
	{"OVERALL ASSESSMENT", secOverall},
	{"HALLUCINATION CHECK", secHallucination},
	{"FABRICATION CHECK", secHallucination},
	{"RECOMMENDATIONS", secRecommendations},
	{"HALLUCINATION", secHallucination},
	{"QUALITY SCORE", secGenericScore},
	{"ISSUES FOUND", secIssues},
	{"PROBLEMS FOUND", secIssues},
	{"STRENGTHS", secStrengths},
	{"ASSESSMENT", secOverall},
	{"ISSUES", secIssues},
	{"SUMMARY", secOverall},
}

var (
	scoreWithScale = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*/\s*(100|10)\b`)
	bareNumber     = regexp.MustCompile(`[0-9]+`)
	severityParen  = regexp.MustCompile(`^\(([A-Za-z]+)\)\s*`)
	fixMarker      = regexp.MustCompile(`(?i)\b(?:fix|suggested edit|rationale)\s*:\s*`)
)

// section is one recognized labeled block: the text on the header line after
// the colon, plus every following line up to the next recognized header.
type section struct {
	kind   sectionKind
	inline string
	lines  []string
}

// body joins the section content, inline text first, capped at
// maxSectionBytes.
func (s *section) body() string {
	parts := make([]string, 0, len(s.lines)+1)
	if strings.TrimSpace(s.inline) != "" {
		parts = append(parts, strings.TrimSpace(s.inline))
	}
	for _, l := range s.lines {
		if strings.TrimSpace(l) != "" {
			parts = append(parts, l)
		}
	}
	joined := strings.Join(parts, "\n")
	if len(joined) > maxSectionBytes {
		joined = joined[:maxSectionBytes]
	}
	return joined
}

// ProseExtractor extracts an AnalysisRecord from a labeled prose reply. It
// works on section boundaries, never fixed line offsets, because producers
// reword and reorder headers freely.
type ProseExtractor struct{}

// NewProseExtractor creates a ProseExtractor.
func NewProseExtractor() *ProseExtractor {
	return &ProseExtractor{}
}

// Extract splits the reply into labeled sections and maps each onto the
// record. Absent sections land in MissingFields; Failure happens only when
// not a single section was recognized.
func (e *ProseExtractor) Extract(reply string) outcome.Outcome[domain.AnalysisRecord] {
	sections := splitSections(reply)
	if len(sections) == 0 {
		return outcome.Failure[domain.AnalysisRecord]("no labeled sections recognized")
	}

	rec := domain.AnalysisRecord{Hallucination: domain.FabricationUnknown}
	var missing []string

	resolveScores(sections, &rec)
	if rec.OriginalQualityScore == nil {
		missing = append(missing, fieldOriginalScore)
	}

	if sec := firstOf(sections, secIssues); sec != nil {
		rec.Issues = parseIssues(sec.body())
	} else {
		missing = append(missing, fieldIssues)
	}

	if sec := firstOf(sections, secStrengths); sec != nil {
		rec.Strengths = parseStrengths(sec.body())
	} else {
		missing = append(missing, fieldStrengths)
	}

	rec.ImprovedRequirementText = extractImprovedText(sections)
	if rec.ImprovedRequirementText == "" {
		missing = append(missing, fieldImprovedText)
	}

	if sec := firstOf(sections, secRecommendations); sec != nil {
		rec.Recommendations = parseRecommendations(sec.body())
	} else {
		missing = append(missing, fieldRecommendations)
	}

	if sec := firstOf(sections, secHallucination); sec != nil {
		rec.Hallucination = parseHallucinationToken(sec.body())
	} else {
		missing = append(missing, fieldHallucination)
	}

	if sec := firstOf(sections, secOverall); sec != nil {
		rec.OverallAssessment = strings.TrimSpace(sec.body())
	} else {
		missing = append(missing, fieldOverallAssessment)
	}

	rec.MissingFields = missing
	if len(missing) > 0 {
		return outcome.Partial(rec, missing)
	}
	return outcome.Success(rec)
}

// splitSections walks the reply line by line. A section starts at any line
// that begins (after optional Markdown markup) with a known header token.
func splitSections(reply string) []*section {
	var sections []*section
	var current *section

	for _, line := range strings.Split(reply, "\n") {
		if kind, rest, ok := matchHeader(line); ok {
			current = &section{kind: kind, inline: rest}
			sections = append(sections, current)
			continue
		}
		if current != nil {
			current.lines = append(current.lines, strings.TrimRight(line, "\r"))
		}
	}
	return sections
}

// matchHeader reports whether the line opens a known section, returning the
// section kind and the same-line remainder after the header and colon.
func matchHeader(line string) (sectionKind, string, bool) {
	stripped := strings.TrimLeft(line, " \t#>*-`")
	stripped = strings.TrimRight(stripped, "\r")
	upper := strings.ToUpper(stripped)

	for _, h := range proseHeaders {
		if !strings.HasPrefix(upper, h.token) {
			continue
		}
		rest := stripped[len(h.token):]
		// The token must end at a word boundary: "ISSUES" must not
		// claim a line starting with "ISSUES-RELATED NOTES".
		if rest != "" {
			c := rest[0]
			if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
				continue
			}
			if c == '-' || c == '_' {
				continue
			}
		}
		rest = strings.TrimLeft(rest, " \t")
		rest = strings.TrimLeft(rest, ":*`")
		return h.kind, strings.TrimSpace(rest), true
	}
	return 0, "", false
}

func firstOf(sections []*section, kind sectionKind) *section {
	for _, s := range sections {
		if s.kind == kind {
			return s
		}
	}
	return nil
}

func allOf(sections []*section, kind sectionKind) []*section {
	var out []*section
	for _, s := range sections {
		if s.kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// resolveScores binds numeric scores to the record. An explicitly
// ORIGINAL-labeled section always wins the original score, even when a bare
// QUALITY SCORE section appears elsewhere: producers are known to restate a
// score for the improved text under the generic header, and binding the
// first occurrence naively captures the wrong value. The generic section
// then feeds the improved score instead, unless an explicit improved-score
// section already did.
func resolveScores(sections []*section, rec *domain.AnalysisRecord) {
	originals := allOf(sections, secOriginalScore)
	generics := allOf(sections, secGenericScore)
	improved := allOf(sections, secImprovedScore)

	if len(originals) > 0 {
		if v, ok := parseScore(originals[0].body()); ok {
			rec.OriginalQualityScore = &v
		}
	} else if len(generics) > 0 {
		if v, ok := parseScore(generics[0].body()); ok {
			rec.OriginalQualityScore = &v
		}
		generics = generics[1:]
	}

	if len(improved) > 0 {
		if v, ok := parseScore(improved[0].body()); ok {
			rec.ImprovedQualityScore = &v
		}
	} else if len(generics) > 0 {
		if v, ok := parseScore(generics[0].body()); ok {
			rec.ImprovedQualityScore = &v
		}
	}
}

// parseScore pulls the first number out of a score section and clamps it to
// the documented scale. A "/100" or "/10" suffix picks the scale; without a
// suffix the 0-10 scale applies.
func parseScore(text string) (int, bool) {
	scale := 10
	numText := ""

	if m := scoreWithScale.FindStringSubmatch(text); m != nil {
		numText = m[1]
		scale, _ = strconv.Atoi(m[2])
	} else if m := bareNumber.FindString(text); m != "" {
		numText = m
	}
	if numText == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(numText, 64)
	if err != nil {
		return 0, false
	}
	v := int(f)
	if v < 0 {
		v = 0
	}
	if v > scale {
		v = scale
	}
	return v, true
}

// extractImprovedText resolves the rewritten requirement. Text on the header
// line after the colon takes priority over following lines: same-line
// content used to be dropped in favor of (absent) following lines, which
// lost the deliverable entirely.
func extractImprovedText(sections []*section) string {
	sec := firstOf(sections, secImprovedText)
	if sec == nil {
		return ""
	}
	if inline := strings.TrimSpace(sec.inline); inline != "" {
		return inline
	}
	var parts []string
	for _, l := range sec.lines {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	text := strings.Join(parts, "\n")
	if len(text) > maxSectionBytes {
		text = text[:maxSectionBytes]
	}
	return text
}

// parseIssues splits a section body into bullets and each bullet into
// category, severity, description and fix.
func parseIssues(body string) []domain.Issue {
	var issues []domain.Issue
	for _, bullet := range splitBullets(body) {
		issues = append(issues, parseIssueBullet(bullet))
	}
	return issues
}

// parseIssueBullet understands the two bullet dialects producers emit:
//
//	(Medium) Ambiguity: description | Fix: do this
//	(High) description. Suggested Edit: do that
func parseIssueBullet(text string) domain.Issue {
	var issue domain.Issue

	if m := severityParen.FindStringSubmatch(text); m != nil {
		issue.Severity = m[1]
		text = text[len(m[0]):]
	}

	desc, fix := splitDescriptionAndFix(text)
	issue.Category, issue.Description = splitCategory(desc)
	issue.Fix = fix
	return issue
}

func parseRecommendations(body string) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, bullet := range splitBullets(body) {
		desc, tail := splitDescriptionAndFix(bullet)
		var rec domain.Recommendation
		rec.Category, rec.Description = splitCategory(desc)
		rec.RationaleOrEdit = tail
		recs = append(recs, rec)
	}
	return recs
}

func parseStrengths(body string) []string {
	var out []string
	for _, bullet := range splitBullets(body) {
		if bullet != "" {
			out = append(out, bullet)
		}
	}
	return out
}

// splitBullets cuts a section body into items. Lines opening with a bullet
// marker start an item; unmarked lines continue the previous one. Bodies
// with no markers at all yield one item per non-empty line.
func splitBullets(body string) []string {
	lines := strings.Split(body, "\n")
	var items []string
	sawMarker := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		rest, marked := stripBulletMarker(trimmed)
		if marked {
			sawMarker = true
			items = append(items, rest)
		} else if sawMarker && len(items) > 0 {
			items[len(items)-1] += " " + trimmed
		} else {
			items = append(items, trimmed)
		}
	}
	return items
}

// stripBulletMarker removes a leading "-", "*", "•" or "1." / "1)" marker.
func stripBulletMarker(s string) (string, bool) {
	for _, m := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(s, m) {
			return strings.TrimSpace(s[len(m):]), true
		}
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return strings.TrimSpace(s[i+1:]), true
	}
	return s, false
}

// splitDescriptionAndFix cuts one bullet into description and fix on a pipe
// or on a "Fix:" / "Suggested Edit:" / "Rationale:" marker, whichever comes
// first.
func splitDescriptionAndFix(text string) (string, string) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "|"); i >= 0 {
		desc := strings.TrimSpace(text[:i])
		fix := strings.TrimSpace(text[i+1:])
		if m := fixMarker.FindStringIndex(fix); m != nil && m[0] == 0 {
			fix = strings.TrimSpace(fix[m[1]:])
		}
		return desc, fix
	}
	if m := fixMarker.FindStringIndex(text); m != nil {
		return strings.TrimSpace(text[:m[0]]), strings.TrimSpace(text[m[1]:])
	}
	return text, ""
}

// splitCategory peels a short leading label off a description. Long prefixes
// with sentence punctuation stay in the description: "The system: it..." is
// prose, "Ambiguity: the term..." is a category.
func splitCategory(desc string) (string, string) {
	i := strings.Index(desc, ":")
	if i <= 0 || i > 40 {
		return "", desc
	}
	label := strings.TrimSpace(desc[:i])
	if strings.ContainsAny(label, ".|") {
		return "", desc
	}
	return label, strings.TrimSpace(desc[i+1:])
}
