package llm

import (
	"encoding/json"
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
)

const maxSectionChars = 3000

// BuildSystemPrompt composes the system message: expert role, the fixed
// injury-criterion limits, the output language, and strict formatting rules.
func BuildSystemPrompt(req NarrativeRequest) string {
	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = constants.DefaultLanguage
	}

	langLine := map[string]string{
		"tr": "Write every prose field in Turkish.",
		"en": "Write every prose field in English.",
		"de": "Write every prose field in German.",
	}[lang]
	if langLine == "" {
		langLine = "Write every prose field in Turkish."
	}

	parts := []string{
		"You are an ECE-R80 impact-test analyst. You read seat impact-test reports written in German or English and explain the findings for engineers.",
		"Return ONLY JSON that matches the provided JSON Schema.",
		langLine,
		"Limits are fixed: HAC 500, ThAC 30 g, FAC 10 kN. A measured value above its limit is FAIL, at or below it is PASS.",
		"In 'summary', state what was tested and the overall pass/fail outcome in a few sentences.",
		"In 'results', walk through each measured criterion against its limit.",
		"In 'graphs', describe peak values and their relation to the limits; never invent curve shapes you were not given.",
		"In 'improvements', suggest concrete follow-ups only when a criterion failed; otherwise state that the values stayed within limits.",
		"Put at most 5 short verdict lines in 'highlights'.",
		"Use only the structured data and section texts provided. Never invent measurement values.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the report identity, the structured measurement
// data, and the per-section text spans. Section texts are truncated so one
// oversized section cannot crowd out the structured data.
func BuildUserPrompt(req NarrativeRequest) string {
	var b strings.Builder
	b.WriteString("Report ID: ")
	b.WriteString(req.ReportID)
	b.WriteString("\nAnalysis language: ")
	b.WriteString(req.Language)
	b.WriteString("\n\nStructured data:\n")
	b.WriteString(structuredJSON(req))

	for _, cat := range constants.SectionCategories {
		text := strings.TrimSpace(req.Sections[cat])
		if text == "" {
			continue
		}
		b.WriteString("\n\nSection [")
		b.WriteString(string(cat))
		b.WriteString("]:\n")
		b.WriteString(truncateRunes(text, maxSectionChars))
	}
	return b.String()
}

// structuredJSON snapshots the measured values, verdicts, and page-2
// metadata for the prompt.
func structuredJSON(req NarrativeRequest) string {
	payload := map[string]any{
		"report_id":       req.ReportID,
		"measured_values": req.Measured,
		"classification":  req.Classification,
	}
	if len(req.Parameters) > 0 {
		payload["measurement_params"] = req.Parameters
	}
	if req.KieltMetadata != nil {
		payload["page_2_metadata"] = req.KieltMetadata
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "\n…(truncated)"
}
