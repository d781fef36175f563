// Package format classifies a document's dialect from its raw text.
//
// This is deliberately a keyword-priority lookup, not a scored classifier:
// the tag whose keyword list matches first wins, checked in a fixed order.
// Ambiguous documents resolve silently to the highest-priority match.
package format

import (
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
)

// rule pairs a format tag with its substring keywords. Order matters.
type rule struct {
	tag      constants.ReportFormat
	keywords []string
}

var rules = []rule{
	{constants.FormatKielt, []string{
		"nosab 16140",
		"tüv rheinland",
		"tuv rheinland",
		"kielt",
		"prüfbericht",
		"justierung/kontrolle",
	}},
	{constants.FormatJUnit, []string{"junit"}},
}

// Detect returns the format tag for the given raw document text.
func Detect(text string) constants.ReportFormat {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tag
			}
		}
	}
	return constants.FormatGeneric
}
