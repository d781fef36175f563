// Package kielt parses the page-2 metadata block of Kielt-dialect reports:
// client and test-condition labels, the Prüfling and Prüfergebnis records
// and the backrest angle table.
package kielt

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/seatsafety/report-analyzer/internal/numparse"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// Label alternatives per simple page-2 field, tried in order. Reports mix
// German and English labels depending on who filled in the template.
var (
	clientLabels         = []string{"Auftraggeber"}
	attendeeLabels       = []string{"Anwesende"}
	conditionLabels      = []string{"Versuchsbedingungen", "Prüfbedingungen", "Testbedingungen"}
	adjustmentLabels     = []string{"Justierung/Kontrolle", "Justierung / Kontrolle"}
	decelerationLabels   = []string{"Schlittenverzögerung", "Schlittenverzoegerung"}
	examinerLabels       = []string{"Examiner"}
	vehicleLabels        = []string{"Testfahrzeug", "Test vehicle", "Versuchsfahrzeug"}
	designationLabels    = []string{"Bezeichnung"}
	manufacturerLabels   = []string{"Hersteller"}
	typeLabels           = []string{"Typ"}
	serialNumberLabels   = []string{"Serien-Nr.", "Seriennr.", "Seriennummer"}
	buildYearLabels      = []string{"Baujahr"}
	weightLabels         = []string{"Gewicht"}
	resultLabels         = []string{"Ergebnis"}
	releaseLabels        = []string{"Freigabe"}
	resultExaminerLabels = []string{"Prüfer", "Pruefer"}
	dateLabels           = []string{"Datum"}
)

// Dummyprüfung line patterns, applied to the checklist body.
var (
	dummyChecksRe = regexp.MustCompile(`(?i)(?:Dummypr[üu]fung\s*)?Dummy(?:\s*-?\s*Checks?)?\s*(?:[:=\-]\s*)?(?P<value>.+?)(?:\r?\n|$)`)
	restraintRe   = regexp.MustCompile(`(?i)R[üu]ckhaltung\s*(?:[:=\-]\s*)?(?P<value>.+?)(?:\r?\n|$)`)
	edgesRe       = regexp.MustCompile(`(?i)Kanten\s*(?:[:=\-]\s*)?(?P<value>.+?)(?:\r?\n|$)`)
	remarkRe      = regexp.MustCompile(`(?i)Bemerk(?:ung|ungen)\s*(?:[:=\-]\s*)?(?P<value>.+?)(?:\r?\n|$)`)

	sharpEdgesRe = regexp.MustCompile(`(?i)Kriterium\s+[„"“]scharfe\s+Kanten[”"“]\s*[:=\-]?\s*(?P<value>.+?)(?:\r?\n|$)`)
)

// CriterionSharpEdges keys the sharp-edge criterion in TestResult.Criteria.
const CriterionSharpEdges = "scharfe_kanten"

// anglePositions orders the four seat positions of the angle table the way
// the report prints its columns.
var anglePositions = []string{"hinten_links", "hinten_rechts", "vorne_links", "vorne_rechts"}

var angleToken = regexp.MustCompile(`-?\d+[\.,]?\d*`)

// ParsePage parses the page-2 metadata text of a Kielt-format report.
// Fields whose labels never match stay empty; the parse itself never
// fails.
func ParsePage(pageText string, logger *slog.Logger) report.KieltPageMetadata {
	if logger == nil {
		logger = slog.Default()
	}

	meta := report.KieltPageMetadata{
		Client:            matchFirst(pageText, clientLabels),
		Attendees:         matchFirst(pageText, attendeeLabels),
		TestConditions:    matchFirst(pageText, conditionLabels),
		AdjustmentControl: matchFirst(pageText, adjustmentLabels),
		SledDeceleration:  matchFirst(pageText, decelerationLabels),
		Examiner:          matchFirst(pageText, examinerLabels),
		TestVehicle:       matchFirst(pageText, vehicleLabels),
		TestObject:        extractTestObject(pageText),
		TestResult:        extractTestResult(pageText),
		AngleTable:        extractAngleTable(pageText, logger),
		RawPageText:       strings.TrimSpace(pageText),
	}

	logger.Debug("kielt.page.parsed",
		"client", meta.Client != "",
		"result", meta.TestResult.Result != "",
		"angle_rows", countAngleRows(meta.AngleTable))
	return meta
}

func extractTestObject(text string) report.TestObject {
	obj := report.TestObject{
		RearMounted:  report.MountingConfig{},
		FrontMounted: report.MountingConfig{},
	}

	block := extractBlock(text, regexp.QuoteMeta("Prüfling"))
	if block == "" {
		return obj
	}

	obj.Designation = matchFirst(block, designationLabels)
	obj.Manufacturer = matchFirst(block, manufacturerLabels)
	obj.TypeName = matchFirst(block, typeLabels)
	obj.SerialNumber = matchFirst(block, serialNumberLabels)
	obj.BuildYear = matchFirst(block, buildYearLabels)
	obj.Weight = matchFirst(block, weightLabels)

	if body := extractNestedSection(block, "Hinten montiert"); body != "" {
		obj.RearMounted = ExtractSubfields(body)
	}
	if body := extractNestedSection(block, "Vorne montiert"); body != "" {
		obj.FrontMounted = ExtractSubfields(body)
	}
	return obj
}

func extractTestResult(text string) report.TestResult {
	res := report.TestResult{
		Criteria: map[string]string{CriterionSharpEdges: ""},
	}

	block := extractBlock(text, regexp.QuoteMeta("Prüfergebnis"))
	if block == "" {
		return res
	}

	res.Result = matchFirst(block, resultLabels)
	res.Release = matchFirst(block, releaseLabels)
	res.Examiner = matchFirst(block, resultExaminerLabels)
	res.Date = matchFirst(block, dateLabels)

	dummyText := extractNestedSection(block, "Dummyprüfung")
	if dummyText == "" {
		dummyText = block
	}
	res.DummyCheck = report.DummyChecklist{
		DummyChecks: extractPatternValue(dummyText, dummyChecksRe),
		Restraint:   extractPatternValue(dummyText, restraintRe),
		Edges:       extractPatternValue(dummyText, edgesRe),
		Remark:      extractPatternValue(dummyText, remarkRe),
	}

	res.Criteria[CriterionSharpEdges] = extractPatternValue(block, sharpEdgesRe)
	return res
}

// extractAngleTable parses the Vorher/Nachher rows below the Lehnen/Winkel
// label. Rows with fewer numeric tokens than positions are dropped.
func extractAngleTable(text string, logger *slog.Logger) report.AngleTable {
	var table report.AngleTable

	block := extractBlock(text, `Lehnen[\s/\-]*Winkel`)
	if block == "" {
		return table
	}

	table.Before = extractAngleRow(block, "Vorher", logger)
	table.After = extractAngleRow(block, "Nachher", logger)
	return table
}

func extractAngleRow(block, rowLabel string, logger *slog.Logger) report.AngleReading {
	rowText := ExtractSimpleField(block, rowLabel, true)
	if rowText == "" {
		return nil
	}
	tokens := angleToken.FindAllString(rowText, -1)
	if len(tokens) < len(anglePositions) {
		logger.Warn("kielt.angle.row.short", "row", rowLabel, "tokens", len(tokens))
		return nil
	}

	row := make(report.AngleReading, len(anglePositions))
	for i, position := range anglePositions {
		if v, ok := numparse.Degrees(tokens[i]); ok {
			value := v
			row[position] = &value
		} else {
			logger.Warn("kielt.angle.value.unparsed", "row", rowLabel, "raw", tokens[i])
			row[position] = nil
		}
	}
	return row
}

func countAngleRows(table report.AngleTable) int {
	n := 0
	if table.Before != nil {
		n++
	}
	if table.After != nil {
		n++
	}
	return n
}
