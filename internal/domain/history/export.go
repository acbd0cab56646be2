package history

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ExportReport renders the visit report as an XLSX workbook: a summary
// sheet with the status histogram and an entries sheet with the raw
// ledger. Entries are capped by limit.
func ExportReport(ctx context.Context, repo Repository, limit int) (*bytes.Buffer, error) {
	counts, err := StatusHistogram(ctx, repo)
	if err != nil {
		return nil, err
	}
	entries, _, err := repo.List(ctx, limit, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	f.SetCellValue(summary, "A1", "status")
	f.SetCellValue(summary, "B1", "count")

	statuses := make([]string, 0, len(counts))
	for status := range counts {
		if status != "total" {
			statuses = append(statuses, status)
		}
	}
	sort.Strings(statuses)
	row := 2
	for _, status := range statuses {
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), status)
		f.SetCellValue(summary, fmt.Sprintf("B%d", row), counts[status])
		row++
	}
	f.SetCellValue(summary, fmt.Sprintf("A%d", row), "total")
	f.SetCellValue(summary, fmt.Sprintf("B%d", row), counts["total"])

	const sheet = "Entries"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	f.SetCellValue(sheet, "A1", "id")
	f.SetCellValue(sheet, "B1", "patient_id")
	f.SetCellValue(sheet, "C1", "status")
	f.SetCellValue(sheet, "D1", "created_at")
	for i, e := range entries {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), e.ID.String())
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), e.PatientID.String())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), e.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), e.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return f.WriteToBuffer()
}
