package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// RuleNarrator is the deterministic fallback used when no model client is
// configured or the model path fails. It renders the classification into
// plain localized prose; section texts are left empty so the assembler pulls
// them straight from the segmented document.
type RuleNarrator struct {
	logger *slog.Logger
}

func NewRuleNarrator(logger *slog.Logger) *RuleNarrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleNarrator{logger: logger}
}

var summaryTemplates = map[string]string{
	"tr": "Toplam %d ölçüm değerlendirildi; %d başarılı, %d başarısız (başarı oranı %s).",
	"en": "%d measurements were evaluated; %d passed, %d failed (success rate %s).",
	"de": "%d Messwerte wurden bewertet; %d bestanden, %d nicht bestanden (Erfolgsquote %s).",
}

var subjectNames = map[string]map[constants.Subject]string{
	"tr": {constants.SubjectLeft: "Sol manken", constants.SubjectRight: "Sağ manken"},
	"en": {constants.SubjectLeft: "Left dummy", constants.SubjectRight: "Right dummy"},
	"de": {constants.SubjectLeft: "Linker Dummy", constants.SubjectRight: "Rechter Dummy"},
}

func (n *RuleNarrator) GenerateNarrative(_ context.Context, req NarrativeRequest) (NarrativePayload, []byte, error) {
	lang := strings.TrimSpace(req.Language)
	if _, ok := summaryTemplates[lang]; !ok {
		lang = constants.DefaultLanguage
	}

	sum := req.Classification.Summary
	payload := NarrativePayload{
		Summary:    fmt.Sprintf(summaryTemplates[lang], sum.TotalTests, sum.Passed, sum.Failed, sum.SuccessRate),
		Results:    n.resultLines(lang, req.Classification),
		Highlights: n.highlights(lang, req.Classification),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return NarrativePayload{}, nil, fmt.Errorf("encode fallback narrative: %w", err)
	}
	n.logger.Debug("llm.narrative.fallback", "report_id", req.ReportID, "language", lang)
	return payload, raw, nil
}

func (n *RuleNarrator) resultLines(lang string, cls report.Classification) string {
	var lines []string
	for _, subject := range cls.Subjects() {
		name := subjectNames[lang][subject.Subject]
		for _, mv := range subject.Metrics {
			if mv.Value == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s: %.2f / limit %.0f -> %s",
				name, mv.Metric, *mv.Value, mv.Limit, mv.Status))
		}
	}
	return strings.Join(lines, "\n")
}

func (n *RuleNarrator) highlights(lang string, cls report.Classification) []string {
	sum := cls.Summary
	out := []string{fmt.Sprintf("%d/%d PASS (%s)", sum.Passed, sum.TotalTests, sum.SuccessRate)}
	for _, subject := range cls.Subjects() {
		if subject.Overall == constants.StatusUnknown {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", subjectNames[lang][subject.Subject], subject.Overall))
		if len(out) == maxHighlights {
			break
		}
	}
	return out
}
