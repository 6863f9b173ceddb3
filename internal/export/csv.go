// Package export renders stored requirement records as CSV or XLSX so they
// can be reviewed or re-imported into the requirements-management tool.
package export

import (
	"encoding/csv"
	"io"

	"reqlens/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility on
// Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// fixedColumns is the header prefix; extra-field columns follow in order of
// first appearance across the batch.
var fixedColumns = []string{
	"Item ID",
	"Global ID",
	"Name",
	"Requirement Description",
}

// CSVWriter wraps csv.Writer for exporting requirement records.
type CSVWriter struct {
	out io.Writer
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{out: w, csv: csv.NewWriter(w)}
}

// WriteRecords writes the BOM, a header row and one row per record. Extra
// fields become additional columns so nothing from the source export is lost.
func (w *CSVWriter) WriteRecords(records []domain.RequirementRecord) error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}

	extras := extraColumns(records)

	header := append(append([]string{}, fixedColumns...), extras...)
	if err := w.csv.Write(header); err != nil {
		return err
	}

	for i := range records {
		if err := w.csv.Write(recordRow(&records[i], extras)); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

// extraColumns collects the union of extra-field names across records,
// keeping the order fields first appear in.
func extraColumns(records []domain.RequirementRecord) []string {
	seen := make(map[string]bool)
	var cols []string
	for i := range records {
		for _, f := range records[i].ExtraFields {
			if !seen[f.Name] {
				seen[f.Name] = true
				cols = append(cols, f.Name)
			}
		}
	}
	return cols
}

func recordRow(rec *domain.RequirementRecord, extras []string) []string {
	row := []string{rec.ID, rec.GlobalID, rec.Name, rec.Description}
	for _, col := range extras {
		v, _ := rec.Extra(col)
		row = append(row, v)
	}
	return row
}
