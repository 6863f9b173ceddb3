package docimport

import (
	"fmt"
	"regexp"
	"strings"

	"reqlens/internal/domain"
	"reqlens/internal/outcome"
)

// field keys a structured export maps onto RequirementRecord fields. Every
// other label is preserved verbatim in ExtraFields.
const (
	labelItemID      = "item id"
	labelGlobalID    = "global id"
	labelName        = "name"
	labelTitle       = "title"
	labelDescription = "requirement description"
	labelDescAlt     = "description"
)

var lineBreakRun = regexp.MustCompile(`[\r\n\x0b]+`)

// StructuredParser extracts one RequirementRecord per labeled two-column
// table block of a structured export.
type StructuredParser struct{}

// NewStructuredParser creates a StructuredParser.
func NewStructuredParser() *StructuredParser {
	return &StructuredParser{}
}

// Parse walks every two-column table, treating each table (or each block
// started by a repeated Item ID row inside one large table) as one record.
// Blocks without a usable id are skipped as warnings; the document's valid
// records are still returned.
func (p *StructuredParser) Parse(content domain.DocumentContent) outcome.Outcome[[]domain.RequirementRecord] {
	var records []domain.RequirementRecord
	var warnings []string

	for ti, table := range content.Tables {
		if !isTwoColumn(table) {
			continue
		}
		for bi, block := range splitBlocks(table) {
			rec, ok := parseBlock(block)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("table %d block %d: no usable Item ID, block skipped", ti+1, bi+1))
				continue
			}
			records = append(records, rec)
		}
	}

	switch {
	case len(records) == 0:
		return outcome.Failure[[]domain.RequirementRecord]("no two-column table yielded a record")
	case len(warnings) > 0:
		return outcome.Partial(records, warnings)
	default:
		return outcome.Success(records)
	}
}

func isTwoColumn(t domain.Table) bool {
	if len(t) == 0 {
		return false
	}
	for _, row := range t {
		if len(row) != 2 {
			return false
		}
	}
	return true
}

// splitBlocks cuts one table into record blocks. Exports usually emit one
// table per requirement, but some producers concatenate every requirement
// into a single table; a repeated Item ID row marks the next record there.
func splitBlocks(t domain.Table) []domain.Table {
	var blocks []domain.Table
	var current domain.Table
	for _, row := range t {
		if normalizeLabel(row[0]) == labelItemID && len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseBlock builds one record from label/value rows. Returns false when the
// block has no non-empty id after trimming; such records are never stored.
func parseBlock(block domain.Table) (domain.RequirementRecord, bool) {
	var rec domain.RequirementRecord
	for _, row := range block {
		label := strings.TrimRight(strings.TrimSpace(row[0]), ":")
		value := normalizeCell(row[1])
		switch normalizeLabel(label) {
		case labelItemID:
			rec.ID = value
		case labelGlobalID:
			rec.GlobalID = value
		case labelName, labelTitle:
			rec.Name = value
		case labelDescription, labelDescAlt:
			rec.Description = value
		default:
			if label != "" {
				rec.ExtraFields = append(rec.ExtraFields, domain.ExtraField{Name: label, Value: value})
			}
		}
	}
	if strings.TrimSpace(rec.ID) == "" {
		return domain.RequirementRecord{}, false
	}
	return rec, true
}

// normalizeCell collapses internal line breaks to single spaces and trims
// the ends, matching how the export renders multi-line cells.
func normalizeCell(s string) string {
	return strings.TrimSpace(lineBreakRun.ReplaceAllString(s, " "))
}
