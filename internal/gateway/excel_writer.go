package gateway

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pms-data-checker/internal/domain"
)

// ExcelReportWriter renders the aggregated statistics and the
// reconciliation report as xlsx workbooks.
type ExcelReportWriter struct {
	outDir string
}

// NewExcelReportWriter creates a writer that saves workbooks under outDir.
func NewExcelReportWriter(outDir string) *ExcelReportWriter {
	return &ExcelReportWriter{outDir: outDir}
}

// WriteStatistics exports the aggregated statistics table and returns the
// path of the written file.
func (w *ExcelReportWriter) WriteStatistics(hotelID string, r domain.DateRange, records []domain.StatRecord) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Statistics"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"occupancyDate", "roomsSold", "netRevenue"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		revenue, _ := rec.NetRevenue.Float64()
		row := []interface{}{rec.OccupancyDate.String(), rec.RoomsSold, revenue}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(w.outDir, fmt.Sprintf("statistics_%s_%s_%s.xlsx", hotelID, r.Start, r.End))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save statistics workbook: %w", err)
	}
	return path, nil
}

// WriteReconciliation exports the diff table plus a summary sheet and
// returns the path of the written file.
func (w *ExcelReportWriter) WriteReconciliation(hotelID string, r domain.DateRange, report *domain.ReconciliationReport) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reconciliation"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	header := []interface{}{
		"date",
		"roomsSoldPrimary", "roomsSoldReference", "roomsDiff",
		"revenuePrimary", "revenueReference", "revenueDiff",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, row := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		revPrimary, _ := row.RevenuePrimary.Float64()
		revReference, _ := row.RevenueReference.Float64()
		revDiff, _ := row.RevenueDiff.Float64()
		values := []interface{}{
			row.Date.String(),
			row.RoomsSoldPrimary, row.RoomsSoldReference, row.RoomsDiff,
			revPrimary, revReference, revDiff,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := w.writeSummarySheet(f, report); err != nil {
		return "", err
	}

	path := filepath.Join(w.outDir, fmt.Sprintf("reconciliation_%s_%s_%s.xlsx", hotelID, r.Start, r.End))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save reconciliation workbook: %w", err)
	}
	return path, nil
}

func (w *ExcelReportWriter) writeSummarySheet(f *excelize.File, report *domain.ReconciliationReport) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"runDate", report.Summary.RunDate.String()},
		{"bucket", "rows", "roomsAccuracy", "revenueAccuracy"},
		summaryRow("past", report.Summary.Past),
		summaryRow("future", report.Summary.Future),
		{"matchedDates", len(report.Rows)},
		{"unmatchedDates", report.Unmatched.Count},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func summaryRow(bucket string, m domain.BucketMetrics) []interface{} {
	return []interface{}{bucket, m.Rows, accuracyCell(m.RoomsAccuracy), accuracyCell(m.RevenueAccuracy)}
}

// accuracyCell renders an undefined accuracy as "n/a" rather than zero.
func accuracyCell(a domain.Accuracy) interface{} {
	if !a.Valid {
		return "n/a"
	}
	v, _ := a.Value.Float64()
	return v
}
