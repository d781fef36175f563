package llm

import (
	"strings"
	"testing"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/report"
)

func TestBuildSystemPromptLanguage(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"tr", "Turkish"},
		{"de", "German"},
		{"en", "English"},
		{"", "Turkish"},
		{"fr", "Turkish"},
	}
	for _, tc := range tests {
		got := BuildSystemPrompt(NarrativeRequest{Language: tc.lang})
		if !strings.Contains(got, tc.want) {
			t.Fatalf("lang %q: prompt missing %q", tc.lang, tc.want)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	sections := report.EmptySections()
	sections[constants.SectionResults] = "HAC blieb unter dem Grenzwert."
	sections[constants.SectionGraphs] = strings.Repeat("x", maxSectionChars+50)

	req := NarrativeRequest{
		ReportID: "kielt19_19",
		Language: "tr",
		Sections: sections,
		Measured: report.MeasuredValues{
			Left:  report.DummyMeasurementSet{},
			Right: report.DummyMeasurementSet{},
		},
	}
	got := BuildUserPrompt(req)

	if !strings.Contains(got, "Report ID: kielt19_19") {
		t.Fatal("report id missing")
	}
	if !strings.Contains(got, "Section [results]:\nHAC blieb unter dem Grenzwert.") {
		t.Fatal("results section missing")
	}
	if strings.Contains(got, "Section [summary]") {
		t.Fatal("empty sections must be skipped")
	}
	if !strings.Contains(got, "…(truncated)") {
		t.Fatal("oversized section should be truncated")
	}
	if !strings.Contains(got, `"report_id": "kielt19_19"`) {
		t.Fatal("structured data snapshot missing")
	}
}
