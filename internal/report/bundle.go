package report

import "github.com/seatsafety/report-analyzer/constants"

// Narrative holds the per-section prose delivered by the narrative
// collaborator (LLM or rule-based). Absent fields degrade to language
// placeholders in the assembler, never to missing keys.
type Narrative struct {
	Summary        string   `json:"summary"`
	TestConditions string   `json:"test_conditions"`
	Graphs         string   `json:"graphs"`
	Results        string   `json:"results"`
	DetailedData   string   `json:"detailed_data"`
	Improvements   string   `json:"improvements"`
	Highlights     []string `json:"highlights,omitempty"`
}

// Metadata carries the high-level report facts derived from structured
// metadata and page texts (seat model, standard, lab, vehicle).
type Metadata struct {
	SeatModel       string `json:"seat_model"`
	TestStandard    string `json:"test_standard"`
	LabName         string `json:"lab_name"`
	VehiclePlatform string `json:"vehicle_platform"`
}

// IDBreakdown decomposes a report identifier such as "kielt19_19" into its
// conventional parts.
type IDBreakdown struct {
	Company     string `json:"company"`
	Type        string `json:"type"`
	Year        string `json:"year"`
	TestNumber  string `json:"test_number"`
	Description string `json:"description"`
}

// Bundle is the normalized output of the whole pipeline for one document:
// everything downstream consumers (persistence, export, API) receive.
// Every expected field is always present; missing narrative inputs are
// substituted with language-specific placeholder copy.
type Bundle struct {
	ReportID    string                 `json:"report_id"`
	IDBreakdown IDBreakdown            `json:"report_id_breakdown"`
	Format      constants.ReportFormat `json:"format"`
	Language    string                 `json:"analysis_language"`

	Sections    SectionMap             `json:"sections"`
	Subsections map[string]string      `json:"subsections,omitempty"`
	Parameters  []MeasurementParameter `json:"measurement_params"`
	Measured    MeasuredValues         `json:"measured_values"`

	Classification Classification    `json:"classification"`
	Commentary     map[string]string `json:"graph_analysis"`
	// Per-dummy measurement lines including head acceleration over 3 ms,
	// which is reported against its own limit but not classified.
	Details map[constants.Subject][]DummyDetail `json:"measurement_details"`

	Narrative Narrative `json:"narrative"`
	// Localized headings for rendering the narrative blocks.
	NarrativeLabels map[string]string `json:"narrative_labels"`
	Metadata        Metadata          `json:"report_metadata"`

	// Only set for Kielt-format documents.
	KieltMetadata *KieltPageMetadata `json:"page_2_metadata,omitempty"`
}
