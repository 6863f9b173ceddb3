package docimport

import (
	"strings"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
)

// maxWindowBytes bounds the description captured around one id token, so a
// document without blank lines cannot produce unbounded records.
const maxWindowBytes = 1500

// GenericParser extracts bare id-plus-surrounding-text records from
// documents that carry requirement ids without the structured table layout.
// The records are deliberately low fidelity; the orchestrator pairs them
// with guidance telling the user to re-export properly.
type GenericParser struct {
	matcher *IDMatcher
}

// NewGenericParser creates a GenericParser. A nil matcher selects the
// default id pattern family.
func NewGenericParser(matcher *IDMatcher) *GenericParser {
	if matcher == nil {
		matcher = MustNewIDMatcher()
	}
	return &GenericParser{matcher: matcher}
}

// Parse produces one record per id token. The description is the text from
// the token up to the next blank line, the next id token, or the window cap,
// whichever comes first. Name defaults to the id itself.
func (p *GenericParser) Parse(content domain.DocumentContent) outcome.Outcome[[]domain.RequirementRecord] {
	matches := p.matcher.matchPositions(content.Text)
	if len(matches) == 0 {
		return outcome.Failure[[]domain.RequirementRecord]("no requirement id tokens found")
	}

	records := make([]domain.RequirementRecord, 0, len(matches))
	for i, m := range matches {
		end := len(content.Text)
		if i+1 < len(matches) && matches[i+1].pos < end {
			end = matches[i+1].pos
		}
		if m.pos+maxWindowBytes < end {
			end = m.pos + maxWindowBytes
		}
		window := content.Text[m.pos:end]
		if cut := indexBlankLine(window); cut >= 0 {
			window = window[:cut]
		}

		records = append(records, domain.RequirementRecord{
			ID:          m.token,
			Name:        m.token,
			Description: normalizeCell(window),
		})
	}
	return outcome.Success(records)
}

// indexBlankLine returns the offset of the first blank line in s, or -1.
func indexBlankLine(s string) int {
	for _, sep := range []string{"\n\n", "\r\n\r\n"} {
		if i := strings.Index(s, sep); i >= 0 {
			return i
		}
	}
	return -1
}
