package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/seatsafety/report-analyzer/internal/report"
)

// Service produces XLSX bytes for analyzed report bundles.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportBundleXLSX returns an XLSX workbook (as bytes) with one verdict row
// per dummy and metric, plus a summary block.
func (s *Service) ExportBundleXLSX(bundle report.Bundle) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Verdicts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Report ID",
		"Dummy",
		"Metric",
		"Measured",
		"Limit",
		"Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	for _, subject := range bundle.Classification.Subjects() {
		for _, mv := range subject.Metrics {
			write(1, row, bundle.ReportID)
			write(2, row, string(subject.Subject))
			write(3, row, string(mv.Metric))
			if mv.Value != nil {
				write(4, row, *mv.Value)
			} else {
				write(4, row, "")
			}
			write(5, row, mv.Limit)
			write(6, row, string(mv.Status))
			row++
		}
	}

	// summary block, one blank row below the verdicts
	sum := bundle.Classification.Summary
	row++
	write(1, row, "Total")
	write(2, row, sum.TotalTests)
	row++
	write(1, row, "Passed")
	write(2, row, sum.Passed)
	row++
	write(1, row, "Failed")
	write(2, row, sum.Failed)
	row++
	write(1, row, "Success Rate")
	write(2, row, sum.SuccessRate)

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 10)
	_ = f.SetColWidth(sheet, "D", "E", 12)
	_ = f.SetColWidth(sheet, "F", "F", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"report_id", bundle.ReportID,
		"rows", row,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
