// Package assemble composes section spans, classified measurements and
// narrative prose into the normalized output bundle of one document,
// substituting localized placeholder copy for anything missing.
package assemble

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/measure"
	"github.com/seatsafety/report-analyzer/internal/report"
	"github.com/seatsafety/report-analyzer/internal/verdict"
)

// Input carries everything the assembler composes. Narrative may be nil;
// the rule-based fallback then fills every field from the section texts.
type Input struct {
	ReportID       string
	SourceFile     string
	Format         constants.ReportFormat
	Language       string
	Sections       report.SectionMap
	Subsections    map[string]string
	Parameters     []report.MeasurementParameter
	Measured       report.MeasuredValues
	Classification report.Classification
	Narrative      *report.Narrative
	KieltMetadata  *report.KieltPageMetadata
	PageTexts      []string
}

var (
	failureIndicators = regexp.MustCompile(`(?i)(\b(fail|failed|failure|error|fehl|abweichung)\b|başarısız|kaldı)`)
	bulletPrefix      = regexp.MustCompile(`^[\-•*·●◦0-9)(.\s]+`)
	sentenceSpace     = regexp.MustCompile(`\s+`)
)

// Head acceleration over 3 ms is reported per dummy against an 80 g limit,
// separately from the HAC criterion.
const head3msLimit = 80.0

// Build assembles the output bundle. Every bundle field is populated;
// narrative gaps degrade to the placeholder copy of the detected language.
func Build(in Input, logger *slog.Logger) report.Bundle {
	if logger == nil {
		logger = slog.Default()
	}

	lang := NormalizeLanguage(in.Language)
	sections := in.Sections
	if sections == nil {
		sections = report.EmptySections()
	}

	reportID := in.ReportID
	if reportID == "" {
		reportID = ExtractReportID(in.SourceFile)
	}

	narrative := buildNarrative(sections, in.Narrative, in.Classification, in.Parameters, lang)

	bundle := report.Bundle{
		ReportID:        reportID,
		IDBreakdown:     ParseReportID(reportID),
		Format:          in.Format,
		Language:        lang,
		Sections:        sections,
		Subsections:     in.Subsections,
		Parameters:      in.Parameters,
		Measured:        in.Measured,
		Classification:  in.Classification,
		Commentary:      metricCommentary(in.Measured),
		Details:         measurementDetails(in.Measured, in.Parameters),
		Narrative:       narrative,
		NarrativeLabels: Labels(lang),
		Metadata:        DeriveMetadata(in.KieltMetadata, in.PageTexts),
		KieltMetadata:   in.KieltMetadata,
	}

	logger.Debug("assemble.build.done",
		"report_id", bundle.ReportID,
		"format", string(bundle.Format),
		"language", lang,
		"highlights", len(bundle.Narrative.Highlights))
	return bundle
}

// buildNarrative merges externally supplied prose with the rule-based
// fallback; empty fields always degrade to placeholders, never stay blank.
func buildNarrative(sections report.SectionMap, external *report.Narrative, c report.Classification, params []report.MeasurementParameter, lang string) report.Narrative {
	strs := Strings(lang)

	conditions := strings.TrimSpace(sections[constants.SectionTestConditions])
	graphs := strings.TrimSpace(sections[constants.SectionGraphs])
	results := strings.TrimSpace(sections[constants.SectionResults])
	detailed := strings.TrimSpace(sections[constants.SectionLoadValues])
	summarySource := strings.TrimSpace(sections[constants.SectionSummary])
	if summarySource == "" {
		summarySource = results
	}

	n := report.Narrative{
		Summary:        summarizeSentences(summarySource, 3, 600),
		TestConditions: conditions,
		Graphs:         graphs,
		Results:        combineResults(results, detailed, strs),
		DetailedData:   detailed,
		Improvements:   improvements(results, detailed, strs),
	}

	if external != nil {
		overlay(&n, external)
	}

	if n.TestConditions == "" {
		n.TestConditions = strs["no_test_conditions"]
	}
	if n.Graphs == "" {
		n.Graphs = strs["no_graphs"]
	}
	if n.Results == "" {
		n.Results = strs["no_results"]
	}
	if n.DetailedData == "" {
		n.DetailedData = strs["no_detailed"]
	}
	if len(n.Highlights) == 0 {
		n.Highlights = buildHighlights(c, params)
	}
	return n
}

func overlay(dst *report.Narrative, src *report.Narrative) {
	if src.Summary != "" {
		dst.Summary = src.Summary
	}
	if src.TestConditions != "" {
		dst.TestConditions = src.TestConditions
	}
	if src.Graphs != "" {
		dst.Graphs = src.Graphs
	}
	if src.Results != "" {
		dst.Results = src.Results
	}
	if src.DetailedData != "" {
		dst.DetailedData = src.DetailedData
	}
	if src.Improvements != "" {
		dst.Improvements = src.Improvements
	}
	if len(src.Highlights) > 0 {
		dst.Highlights = src.Highlights
	}
}

func combineResults(results, detailed string, strs map[string]string) string {
	combined := results
	if detailed != "" {
		appendix := strs["appendix"] + "\n" + detailed
		if combined != "" {
			combined = combined + "\n\n" + appendix
		} else {
			combined = appendix
		}
	}
	return combined
}

// improvements picks the action text: list items when a failure indicator
// was seen and the sections contain bullets, a generic warning when a
// failure was seen without bullets, and the success copy otherwise.
func improvements(results, detailed string, strs map[string]string) string {
	if !failureIndicators.MatchString(results + " " + detailed) {
		return strs["improvements_success"]
	}
	items := extractListItems(detailed)
	if len(items) == 0 {
		items = extractListItems(results)
	}
	if len(items) > 3 {
		items = items[:3]
	}
	if len(items) == 0 {
		return strs["improvements_fail"]
	}
	lines := []string{strs["improvements_intro"]}
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

// buildHighlights lists up to five notable findings: the success rate,
// each subject's overall outcome and any head 3 ms exceedance.
func buildHighlights(c report.Classification, params []report.MeasurementParameter) []string {
	var highlights []string
	if c.Summary.TotalTests > 0 {
		highlights = append(highlights, fmt.Sprintf("%d/%d PASS (%s)",
			c.Summary.Passed, c.Summary.TotalTests, c.Summary.SuccessRate))
	}
	for _, sv := range c.Subjects() {
		if sv.Overall != constants.StatusUnknown {
			highlights = append(highlights, fmt.Sprintf("%s: %s", sv.Subject, sv.Overall))
		}
	}
	for _, v := range head3msValues(params) {
		if v > head3msLimit {
			highlights = append(highlights, fmt.Sprintf("a Kopf über 3 ms: %.2f g > %.0f g", v, head3msLimit))
		}
	}
	if len(highlights) > 5 {
		highlights = highlights[:5]
	}
	return highlights
}

// head3msValues collects the head-over-3-ms readings in extraction order,
// left then right by the dual-value convention.
func head3msValues(params []report.MeasurementParameter) []float64 {
	var values []float64
	for _, p := range params {
		identifier := measure.NormalizeIdentifier(p.Name)
		if strings.Contains(identifier, "kopf") && strings.Contains(identifier, "3 ms") {
			values = append(values, p.Values...)
		}
	}
	return values
}

// measurementDetails renders the per-dummy detail lines: the three
// classified criteria plus head acceleration over 3 ms, which carries its
// own limit without feeding the classification.
func measurementDetails(measured report.MeasuredValues, params []report.MeasurementParameter) map[constants.Subject][]report.DummyDetail {
	head := head3msValues(params)
	units := map[constants.Metric]string{
		constants.MetricHAC:  "",
		constants.MetricThAC: "g",
		constants.MetricFAC:  "kN",
	}

	build := func(set report.DummyMeasurementSet, headIdx int) []report.DummyDetail {
		details := make([]report.DummyDetail, 0, len(constants.Metrics)+1)
		for _, metric := range constants.Metrics {
			d := report.DummyDetail{
				Name:  string(metric),
				Unit:  units[metric],
				Limit: verdict.DefaultLimits[metric],
			}
			if v, ok := set.Value(metric); ok {
				val := v
				d.Value = &val
			}
			details = append(details, d)
		}
		h := report.DummyDetail{Name: "a Kopf über 3 ms", Unit: "g", Limit: head3msLimit}
		if headIdx < len(head) {
			v := head[headIdx]
			h.Value = &v
		}
		return append(details, h)
	}

	return map[constants.Subject][]report.DummyDetail{
		constants.SubjectLeft:  build(measured.Left, 0),
		constants.SubjectRight: build(measured.Right, 1),
	}
}

// metricCommentary renders the per-metric comparison lines shown next to
// the graphs, in the report's primary language.
func metricCommentary(measured report.MeasuredValues) map[string]string {
	return map[string]string{
		"head_acceleration":  metricComment(constants.MetricHAC, measured, "g"),
		"chest_acceleration": metricComment(constants.MetricThAC, measured, "g"),
		"femur_load":         metricComment(constants.MetricFAC, measured, "kN"),
	}
}

func metricComment(metric constants.Metric, measured report.MeasuredValues, unit string) string {
	var parts []string
	if v, ok := measured.Left.Value(metric); ok {
		parts = append(parts, fmt.Sprintf("sol manken %.2f %s", v, unit))
	}
	if v, ok := measured.Right.Value(metric); ok {
		parts = append(parts, fmt.Sprintf("sağ manken %.2f %s", v, unit))
	}
	if len(parts) == 0 {
		return "Tablo verilerinde bu ölçüm bulunamadı."
	}
	limitText := "limit belirtilmedi"
	if limit, ok := defaultLimit(metric); ok {
		limitText = fmt.Sprintf("limit %.0f %s", limit, unit)
	}
	return fmt.Sprintf("%s ölçümleri %s olup %s değerine göre karşılaştırılabilir.",
		metric, strings.Join(parts, " ve "), limitText)
}

func defaultLimit(metric constants.Metric) (float64, bool) {
	limit, ok := verdict.DefaultLimits[metric]
	return limit, ok
}

// summarizeSentences keeps the first maxSentences sentences of cleaned
// text, truncated to maxChars runes with an ellipsis.
func summarizeSentences(text string, maxSentences, maxChars int) string {
	cleaned := sentenceSpace.ReplaceAllString(strings.TrimSpace(text), " ")
	if cleaned == "" {
		return ""
	}
	sentences := splitSentences(cleaned)
	summary := cleaned
	if len(sentences) > 0 {
		if len(sentences) > maxSentences {
			sentences = sentences[:maxSentences]
		}
		summary = strings.Join(sentences, " ")
	}
	runes := []rune(summary)
	if len(runes) > maxChars {
		summary = strings.TrimRight(string(runes[:maxChars]), " ") + "..."
	}
	return summary
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '.' && ch != '!' && ch != '?' {
			continue
		}
		if i+1 == len(text) || text[i+1] == ' ' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// extractListItems pulls cleaned bullet or line items out of free text,
// dropping fragments shorter than three runes.
func extractListItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		stripped = strings.TrimSpace(bulletPrefix.ReplaceAllString(stripped, ""))
		if len([]rune(stripped)) < 3 {
			continue
		}
		items = append(items, stripped)
	}
	return items
}
