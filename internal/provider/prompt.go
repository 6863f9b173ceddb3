package provider

import "fmt"

// BuildQualityPrompt returns the quality-analysis prompt for one requirement.
// The reply format below is what internal/respparse extracts; keep the two
// in sync when changing section names.
func BuildQualityPrompt(id, name, description string) string {
	return fmt.Sprintf(`You are a requirements quality analyst. Analyze the following requirement against INCOSE-style quality criteria: unambiguity, verifiability, completeness, singularity, and freedom from implementation detail.

Requirement ID: %s
Name: %s
Requirement text:
%s

Respond with EXACTLY the following labeled sections, in this order:

ORIGINAL REQUIREMENT QUALITY SCORE: <integer 0-10>

ISSUES FOUND:
- (<Severity>) <Category>: <description> | Fix: <suggested fix>

STRENGTHS:
- <strength>

IMPROVED REQUIREMENT: <the complete rewritten requirement on this line>

QUALITY SCORE: <integer 0-10 for the improved version>

RECOMMENDATIONS:
- <Category>: <description> | Rationale: <why>

HALLUCINATION CHECK: <NO_FABRICATION or FABRICATED_DETAILS>

OVERALL ASSESSMENT: <one short paragraph>

Rules:
- The IMPROVED REQUIREMENT section is mandatory. Never omit it.
- Base the rewrite only on information present in the original requirement.
  If you had to invent any detail, report FABRICATED_DETAILS.
- Use (High), (Medium) or (Low) severity markers on every issue.
- Do not wrap the reply in Markdown code fences.`, id, name, description)
}
