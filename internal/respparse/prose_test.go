package respparse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
	"reqlens/internal/respparse"
)

const fullProseReply = `ORIGINAL REQUIREMENT QUALITY SCORE: 4/10

ISSUES FOUND:
- (High) Ambiguity: the term "fast" is not measurable | Fix: state a latency bound
- (Medium) missing acceptance criteria. Suggested Edit: add a verification method

STRENGTHS:
- clear actor
- single statement

IMPROVED REQUIREMENT: The system shall respond to user input within 2 seconds.

QUALITY SCORE: 8/10

RECOMMENDATIONS:
- Verifiability: add a test method | Rationale: enables acceptance testing

HALLUCINATION CHECK: NO_FABRICATION

OVERALL ASSESSMENT: Weak wording but a salvageable requirement.`

func TestProseExtractor_FullReply(t *testing.T) {
	e := respparse.NewProseExtractor()

	res := e.Extract(fullProseReply)

	require.Equal(t, outcome.StatusSuccess, res.Status)
	rec := res.Value

	require.NotNil(t, rec.OriginalQualityScore)
	assert.Equal(t, 4, *rec.OriginalQualityScore)
	require.NotNil(t, rec.ImprovedQualityScore)
	assert.Equal(t, 8, *rec.ImprovedQualityScore)

	require.Len(t, rec.Issues, 2)
	assert.Equal(t, "High", rec.Issues[0].Severity)
	assert.Equal(t, "Ambiguity", rec.Issues[0].Category)
	assert.Equal(t, `the term "fast" is not measurable`, rec.Issues[0].Description)
	assert.Equal(t, "state a latency bound", rec.Issues[0].Fix)
	assert.Equal(t, "Medium", rec.Issues[1].Severity)
	assert.Equal(t, "add a verification method", rec.Issues[1].Fix)

	assert.Equal(t, []string{"clear actor", "single statement"}, rec.Strengths)
	assert.Equal(t, "The system shall respond to user input within 2 seconds.", rec.ImprovedRequirementText)

	require.Len(t, rec.Recommendations, 1)
	assert.Equal(t, "Verifiability", rec.Recommendations[0].Category)
	assert.Equal(t, "enables acceptance testing", rec.Recommendations[0].RationaleOrEdit)

	assert.Equal(t, domain.NoFabrication, rec.Hallucination)
	assert.Equal(t, "Weak wording but a salvageable requirement.", rec.OverallAssessment)
}

func TestProseExtractor_OriginalLabelBeatsGenericScore(t *testing.T) {
	e := respparse.NewProseExtractor()

	// A generic QUALITY SCORE appears before the labeled original score.
	// The ORIGINAL label must win; the generic score feeds the improved one.
	reply := strings.Join([]string{
		"QUALITY SCORE: 95/100",
		"ORIGINAL REQUIREMENT QUALITY SCORE: 4/10",
		"IMPROVED REQUIREMENT: The system shall do X.",
	}, "\n")
	res := e.Extract(reply)

	require.True(t, res.Usable())
	rec := res.Value
	require.NotNil(t, rec.OriginalQualityScore)
	assert.Equal(t, 4, *rec.OriginalQualityScore)
	require.NotNil(t, rec.ImprovedQualityScore)
	assert.Equal(t, 95, *rec.ImprovedQualityScore)
}

func TestProseExtractor_GenericScoresBindInOrder(t *testing.T) {
	e := respparse.NewProseExtractor()

	reply := strings.Join([]string{
		"QUALITY SCORE: 3/10",
		"IMPROVED REQUIREMENT: The system shall do X.",
		"QUALITY SCORE: 8/10",
	}, "\n")
	res := e.Extract(reply)

	require.True(t, res.Usable())
	rec := res.Value
	require.NotNil(t, rec.OriginalQualityScore)
	assert.Equal(t, 3, *rec.OriginalQualityScore)
	require.NotNil(t, rec.ImprovedQualityScore)
	assert.Equal(t, 8, *rec.ImprovedQualityScore)
}

func TestProseExtractor_ScoreScaleClamp(t *testing.T) {
	e := respparse.NewProseExtractor()

	tests := []struct {
		name string
		line string
		want int
	}{
		{"ten scale", "ORIGINAL QUALITY SCORE: 7/10", 7},
		{"hundred scale", "ORIGINAL QUALITY SCORE: 85/100", 85},
		{"over ten without scale clamps to ten", "ORIGINAL QUALITY SCORE: 42", 10},
		{"over hundred clamps to hundred", "ORIGINAL QUALITY SCORE: 250/100", 100},
		{"decimal truncates", "ORIGINAL QUALITY SCORE: 7.8/10", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Extract(tt.line)
			require.True(t, res.Usable())
			require.NotNil(t, res.Value.OriginalQualityScore)
			assert.Equal(t, tt.want, *res.Value.OriginalQualityScore)
		})
	}
}

func TestProseExtractor_ImprovedTextSameLinePriority(t *testing.T) {
	e := respparse.NewProseExtractor()

	reply := "IMPROVED REQUIREMENT: The system shall do X.\nThis trailing commentary must not replace the deliverable."
	res := e.Extract(reply)

	require.True(t, res.Usable())
	assert.Equal(t, "The system shall do X.", res.Value.ImprovedRequirementText)
}

func TestProseExtractor_ImprovedTextOnFollowingLines(t *testing.T) {
	e := respparse.NewProseExtractor()

	reply := "IMPROVED REQUIREMENT:\nThe system shall respond\nwithin 2 seconds."
	res := e.Extract(reply)

	require.True(t, res.Usable())
	assert.Equal(t, "The system shall respond\nwithin 2 seconds.", res.Value.ImprovedRequirementText)
}

func TestProseExtractor_MarkdownHeaders(t *testing.T) {
	e := respparse.NewProseExtractor()

	reply := strings.Join([]string{
		"## ORIGINAL QUALITY SCORE: 5/10",
		"### Issues Found:",
		"* vague terminology",
		"**IMPROVED REQUIREMENT:** The system shall X.",
	}, "\n")
	res := e.Extract(reply)

	require.True(t, res.Usable())
	rec := res.Value
	require.NotNil(t, rec.OriginalQualityScore)
	assert.Equal(t, 5, *rec.OriginalQualityScore)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, "vague terminology", rec.Issues[0].Description)
	assert.Equal(t, "The system shall X.", rec.ImprovedRequirementText)
}

func TestProseExtractor_HeaderWordBoundary(t *testing.T) {
	e := respparse.NewProseExtractor()

	// "ISSUES-RELATED" must not open an issues section.
	res := e.Extract("ISSUES-RELATED NOTES ONLY")

	assert.True(t, res.Failed())
}

func TestProseExtractor_SingleSectionIsPartial(t *testing.T) {
	e := respparse.NewProseExtractor()

	res := e.Extract("STRENGTHS:\n- concise")

	require.Equal(t, outcome.StatusPartial, res.Status)
	assert.Equal(t, []string{"concise"}, res.Value.Strengths)
	assert.Contains(t, res.Value.MissingFields, "improved_requirement_text")
	assert.Contains(t, res.Value.MissingFields, "original_quality_score")
}

func TestProseExtractor_NoSections(t *testing.T) {
	e := respparse.NewProseExtractor()

	res := e.Extract("free text without any labels at all")

	assert.True(t, res.Failed())
	assert.Equal(t, "no labeled sections recognized", res.Reason)
}

func TestProseExtractor_NumberedBulletsAndContinuations(t *testing.T) {
	e := respparse.NewProseExtractor()

	reply := strings.Join([]string{
		"ISSUES FOUND:",
		"1. (Low) first issue",
		"   continued on the next line",
		"2) second issue",
	}, "\n")
	res := e.Extract(reply)

	require.True(t, res.Usable())
	require.Len(t, res.Value.Issues, 2)
	assert.Equal(t, "Low", res.Value.Issues[0].Severity)
	assert.Contains(t, res.Value.Issues[0].Description, "continued on the next line")
	assert.Equal(t, "second issue", res.Value.Issues[1].Description)
}

func TestProseExtractor_FabricationCheckHeader(t *testing.T) {
	e := respparse.NewProseExtractor()

	res := e.Extract("FABRICATION CHECK: FABRICATED_DETAILS\nIMPROVED REQUIREMENT: x")

	require.True(t, res.Usable())
	assert.Equal(t, domain.FabricatedDetails, res.Value.Hallucination)
}
