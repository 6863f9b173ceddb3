package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"reqlens/internal/domain"
)

const sheetName = "Requirements"

// WriteXLSX renders the records as a single-sheet workbook with the same
// column layout as the CSV export.
func WriteXLSX(w io.Writer, records []domain.RequirementRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	extras := extraColumns(records)
	header := append(append([]string{}, fixedColumns...), extras...)
	if err := writeRow(f, 1, header); err != nil {
		return err
	}

	for i := range records {
		row := recordRow(&records[i], extras)
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	return nil
}
