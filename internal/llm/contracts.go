package llm

import (
	"context"

	"github.com/seatsafety/report-analyzer/internal/report"
)

// NarrativePayload is the normalized shape we want from the narrative model.
// Field names mirror report.Narrative so a valid payload converts 1:1.
type NarrativePayload struct {
	Summary        string   `json:"summary"`
	TestConditions string   `json:"test_conditions,omitempty"`
	Graphs         string   `json:"graphs,omitempty"`
	Results        string   `json:"results"`
	DetailedData   string   `json:"detailed_data,omitempty"`
	Improvements   string   `json:"improvements,omitempty"`
	Highlights     []string `json:"highlights,omitempty"` // at most 5
}

// ToNarrative converts the payload into the assembler's narrative type.
func (p NarrativePayload) ToNarrative() report.Narrative {
	return report.Narrative{
		Summary:        p.Summary,
		TestConditions: p.TestConditions,
		Graphs:         p.Graphs,
		Results:        p.Results,
		DetailedData:   p.DetailedData,
		Improvements:   p.Improvements,
		Highlights:     p.Highlights,
	}
}

type NarrativeRequest struct {
	ReportID string
	Language string // tr, en, de; commentary defaults to tr

	Sections   report.SectionMap
	Parameters []report.MeasurementParameter
	Measured   report.MeasuredValues

	Classification report.Classification
	KieltMetadata  *report.KieltPageMetadata
}

// Narrator is the interface the pipeline depends on. Implementations return
// the parsed payload plus the raw JSON body that produced it, for audit.
type Narrator interface {
	GenerateNarrative(ctx context.Context, req NarrativeRequest) (NarrativePayload, []byte, error)
}
