// Package report holds the value types flowing through the extraction
// pipeline. Every type here is a derived, per-document computation result:
// built once, never mutated, serialized as-is for persistence and export.
package report

import (
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
)

// Table is one extracted table matrix as delivered by the PDF extraction
// collaborator. Cells arrive as raw strings, numbers included.
type Table struct {
	Page       int        `json:"page"`
	TableIndex int        `json:"table_index"`
	Rows       [][]string `json:"rows"`
}

// RawDocument is the input contract of the extraction core: ordered page
// texts plus the table matrices found on them. The core never re-reads the
// source PDF.
type RawDocument struct {
	PageTexts []string `json:"page_texts"`
	Tables    []Table  `json:"tables"`
}

// FullText joins all page texts in order.
func (d RawDocument) FullText() string {
	return strings.Join(d.PageTexts, "\n")
}

// PageText returns the text of the 1-based page number, or "" when the page
// does not exist.
func (d RawDocument) PageText(page int) string {
	if page < 1 || page > len(d.PageTexts) {
		return ""
	}
	return d.PageTexts[page-1]
}

// SectionMap maps every fixed section category to its extracted text span.
// All category keys are always present; unmatched ones hold "".
type SectionMap map[constants.SectionCategory]string

// EmptySections returns a SectionMap with every category present and empty.
func EmptySections() SectionMap {
	m := make(SectionMap, len(constants.SectionCategories))
	for _, c := range constants.SectionCategories {
		m[c] = ""
	}
	return m
}
