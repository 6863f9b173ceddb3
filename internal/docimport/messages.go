package docimport

import (
	"fmt"
	"strings"

	"reqlens/internal/domain"
)

// methodNames are the user-facing names of the two parsers.
var methodNames = map[domain.ImportMethod]string{
	domain.MethodStructuredParser: "the structured table parser",
	domain.MethodGenericParser:    "the generic document parser",
}

// successMessage reports an import that produced records, naming the parser
// that produced them and the field labels the detector recognized.
func successMessage(n int, method domain.ImportMethod, det domain.DetectionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Successfully imported %d requirements using %s.", n, methodNames[method])
	if len(det.MatchedFieldLabels) > 0 {
		fmt.Fprintf(&b, "\nRecognized field labels: %s.", strings.Join(det.MatchedFieldLabels, ", "))
	}
	return b.String()
}

// formatIssueMessage covers documents where requirement ids were found but
// no structured export table could be read.
func formatIssueMessage(det domain.DetectionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d requirement ID(s) in a general document. Use the generic import option.", len(det.MatchedIDs))

	samples := det.MatchedIDs
	if len(samples) > 3 {
		samples = samples[:3]
	}
	if len(samples) > 0 {
		fmt.Fprintf(&b, "\nIDs found include: %s.", strings.Join(samples, ", "))
	}
	b.WriteString("\nTroubleshooting:")
	b.WriteString("\n- Check that IDs follow the expected format, e.g. PROJ-REQ_RC-001.")
	b.WriteString("\n- Verify the document is not corrupted or truncated.")
	b.WriteString("\n- Confirm the export was done in \"All Data\" mode so field tables are included.")
	return b.String()
}

// unknownFormatMessage is the full guidance block returned when no signal at
// all was recognized.
func unknownFormatMessage(det domain.DetectionResult) string {
	var b strings.Builder
	b.WriteString("No requirements could be recognized in this document.\n")
	b.WriteString("\nTo import a structured export:\n")
	b.WriteString("1. Open the project in your requirements-management tool.\n")
	b.WriteString(`2. Export the requirements to Word using the "All Data" option,` + "\n")
	b.WriteString("   so every field appears as a two-column field/value table.\n")
	b.WriteString("3. Import the exported document without editing it.\n")
	b.WriteString("\nAlternatively, a general document is accepted when it contains\n")
	b.WriteString("requirement identifiers in one of these forms:\n")
	b.WriteString("  PROJ-REQ_RC-001\n")
	b.WriteString("  ABC-REQ-123\n")
	b.WriteString("  REQ_001\n")
	if len(det.Reasons) > 0 {
		b.WriteString("\nWhat the detector saw:\n")
		for _, r := range det.Reasons {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	return b.String()
}
