package pipeline

import (
	"context"
	"log/slog"

	"github.com/seatsafety/report-analyzer/internal/assemble"
	"github.com/seatsafety/report-analyzer/internal/common"
	"github.com/seatsafety/report-analyzer/internal/llm"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// Processor coordinates analysis, the narrative collaborator, and assembly.
// Narrator is optional; without one (or when it fails) the assembler falls
// back to section texts and placeholder copy.
type Processor struct {
	Logger   *slog.Logger
	Narrator llm.Narrator
}

func NewProcessor(logger *slog.Logger, narrator llm.Narrator) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Narrator: narrator}
}

// Process runs the full pipeline for one raw document and returns the
// assembled bundle. A narrative failure is logged and degraded, never fatal:
// the deterministic result is always delivered.
func (p *Processor) Process(ctx context.Context, sourceFile string, doc report.RawDocument) (report.Bundle, error) {
	a := Analyze(sourceFile, doc, p.Logger)

	var narrative *report.Narrative
	if p.Narrator != nil {
		payload, _, err := p.Narrator.GenerateNarrative(ctx, llm.NarrativeRequest{
			ReportID:       a.ReportID,
			Language:       a.Language,
			Sections:       a.Sections,
			Parameters:     a.Parameters,
			Measured:       a.Measured,
			Classification: a.Classification,
			KieltMetadata:  a.KieltMetadata,
		})
		if err != nil {
			p.Logger.Warn("pipeline.narrative.degraded", "report_id", a.ReportID, "error", err)
		} else {
			n := payload.ToNarrative()
			narrative = &n
		}
	}

	bundle := assemble.Build(assemble.Input{
		ReportID:       a.ReportID,
		SourceFile:     sourceFile,
		Format:         a.Format,
		Language:       a.Language,
		Sections:       a.Sections,
		Subsections:    a.Subsections,
		Parameters:     a.Parameters,
		Measured:       a.Measured,
		Classification: a.Classification,
		Narrative:      narrative,
		KieltMetadata:  a.KieltMetadata,
		PageTexts:      a.PageTexts,
	}, p.Logger)

	logger := p.Logger
	if trace := common.RequestIDFromContext(ctx); trace != "" {
		logger = logger.With("trace_id", trace)
	}
	logger.Info("pipeline.process.done",
		"report_id", bundle.ReportID,
		"format", bundle.Format,
		"overall_left", bundle.Classification.Left.Overall,
		"overall_right", bundle.Classification.Right.Overall,
	)
	return bundle, nil
}
