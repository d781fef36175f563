// Package pipeline coordinates the extraction stages for one document:
// format detection, section segmentation, measurement extraction, page-2
// parsing, pass/fail classification, narrative, and final assembly.
package pipeline

import (
	"log/slog"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/assemble"
	"github.com/seatsafety/report-analyzer/internal/format"
	"github.com/seatsafety/report-analyzer/internal/kielt"
	"github.com/seatsafety/report-analyzer/internal/measure"
	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/section"
	"github.com/seatsafety/report-analyzer/internal/verdict"
)

// Analysis is the structured result of the deterministic stages, before any
// narrative is attached.
type Analysis struct {
	ReportID string
	Format   constants.ReportFormat
	Language string

	Sections    report.SectionMap
	Subsections map[string]string

	Parameters []report.MeasurementParameter
	Measured   report.MeasuredValues

	Classification report.Classification
	KieltMetadata  *report.KieltPageMetadata

	PageTexts []string
}

// The Kielt layout keeps its structured metadata on the second page.
const kieltMetadataPage = 2

// Analyze runs every deterministic extraction stage over the raw document.
// It never fails: stages that find nothing leave their slot empty and the
// classification degrades to UNKNOWN verdicts.
func Analyze(sourceFile string, doc report.RawDocument, logger *slog.Logger) Analysis {
	if logger == nil {
		logger = slog.Default()
	}

	text := doc.FullText()
	a := Analysis{
		ReportID:  assemble.ExtractReportID(sourceFile),
		Format:    format.Detect(text),
		Language:  section.IdentifyLanguage(text),
		PageTexts: doc.PageTexts,
	}

	a.Sections = section.DetectSections(text, logger)
	a.Subsections = section.DetectSubsections(text, logger)
	a.Parameters = measure.Extract(text, doc.Tables, logger)
	a.Measured, a.Classification = verdict.Evaluate(a.Parameters, logger)

	if a.Format == constants.FormatKielt {
		if page := doc.PageText(kieltMetadataPage); page != "" {
			meta := kielt.ParsePage(page, logger)
			a.KieltMetadata = &meta
		}
	}

	logger.Info("pipeline.analyze.done",
		"report_id", a.ReportID,
		"format", a.Format,
		"language", a.Language,
		"param_count", len(a.Parameters),
		"success_rate", a.Classification.Summary.SuccessRate,
	)
	return a
}
