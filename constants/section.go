package constants

// SectionCategory names one of the fixed report sections the segmenter
// recognizes. Every category key is always present in a section map, empty
// when unmatched.
type SectionCategory string

const (
	SectionTestConditions SectionCategory = "test_conditions"
	SectionGraphs         SectionCategory = "graphs"
	SectionResults        SectionCategory = "results"
	SectionLoadValues     SectionCategory = "load_values"
	SectionSummary        SectionCategory = "summary"
)

// SectionCategories lists every category in output order.
var SectionCategories = []SectionCategory{
	SectionTestConditions,
	SectionGraphs,
	SectionResults,
	SectionLoadValues,
	SectionSummary,
}

// Subsection keys recognized inside a larger section.
const (
	SubsectionSledDeceleration = "sled_deceleration"
	SubsectionLoadValues       = "load_values"
	SubsectionPhotoDocs        = "photo_documentation"
	SubsectionTestSetup        = "test_setup"
)
