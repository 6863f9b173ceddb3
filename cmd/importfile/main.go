// Command importfile runs the import pipeline against a local .xlsx export
// and stores the result, bypassing the HTTP API. Useful for bulk loads and
// for checking what the detector makes of a given file.
// Usage: go run ./cmd/importfile <file.xlsx> <created-by-user-uuid>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"reqlens/internal/config"
	"reqlens/internal/docimport"
	"reqlens/internal/domain"
	"reqlens/internal/recordcheck"
	"reqlens/internal/repository/postgres"
	"reqlens/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		fmt.Println("Usage: importfile <file.xlsx> <created-by-user-uuid>")
		os.Exit(1)
	}
	path := os.Args[1]
	createdBy, err := uuid.Parse(os.Args[2])
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	content, err := readWorkbook(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	idPatterns := append(docimport.DefaultIDPatterns(), cfg.Import.ExtraIDPatterns...)
	matcher, err := docimport.NewIDMatcher(idPatterns...)
	if err != nil {
		return fmt.Errorf("compiling id patterns: %w", err)
	}
	labels := append(append([]string{}, docimport.DefaultFieldLabels...), cfg.Import.ExtraFieldLabels...)
	orch := docimport.NewOrchestrator(
		docimport.NewDetector(labels, matcher),
		docimport.NewStructuredParser(),
		docimport.NewGenericParser(matcher),
	)
	importSvc := service.NewImportService(orch, postgres.NewRequirementRepo(db), nil)

	result, batch, err := importSvc.Import(context.Background(), &service.ImportInput{
		SourceName: path,
		Content:    content,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return err
	}

	log.Printf("detected %s (confidence %.2f)", result.Detection.Format, result.Detection.Confidence)
	log.Printf("imported %d requirements via %s in %dms (batch %s)",
		len(result.Records), result.MethodUsed, result.DurationMs, batch.ID)
	if len(result.Records) == 0 {
		fmt.Println(result.UserMessage)
		return nil
	}

	report := recordcheck.NewDefaultEngine(matcher).CheckBatch(result.Records)
	for _, f := range report.Findings {
		log.Printf("%s: %s", f.Severity, f.Message)
	}
	return nil
}

// readWorkbook flattens a workbook into document content: every sheet's cell
// matrix becomes a table, and the concatenated cells become the text stream.
func readWorkbook(path string) (domain.DocumentContent, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.DocumentContent{}, err
	}
	defer func() { _ = f.Close() }()

	var content domain.DocumentContent
	var text strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return domain.DocumentContent{}, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		table := make(domain.Table, 0, len(rows))
		for _, row := range rows {
			table = append(table, row)
			text.WriteString(strings.Join(row, "\t"))
			text.WriteString("\n")
		}
		content.Tables = append(content.Tables, table)
	}
	content.Text = text.String()
	return content, nil
}
