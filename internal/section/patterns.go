package section

import (
	"regexp"

	"github.com/seatsafety/report-analyzer/constants"
)

// headingRule is one heading alternative for a section category in one
// language. Rules are kept as an explicit ordered table so the matching
// stays auditable and tests can pin expected output per rule.
type headingRule struct {
	Category constants.SectionCategory
	Language string
	Pattern  *regexp.Regexp
}

func rule(cat constants.SectionCategory, lang, expr string) headingRule {
	return headingRule{Category: cat, Language: lang, Pattern: regexp.MustCompile(`(?im)` + expr)}
}

// headingRules covers three languages per category. Order is priority order
// within a category; across categories the earliest text position wins.
var headingRules = []headingRule{
	// test conditions
	rule(constants.SectionTestConditions, "tr", `Test Koşulları`),
	rule(constants.SectionTestConditions, "tr", `Test Şartları`),
	rule(constants.SectionTestConditions, "tr", `Deney Koşulları`),
	rule(constants.SectionTestConditions, "tr", `Test Kurulumu`),
	rule(constants.SectionTestConditions, "tr", `Test Ortamı`),
	rule(constants.SectionTestConditions, "en", `Test Conditions`),
	rule(constants.SectionTestConditions, "en", `Testing Conditions`),
	rule(constants.SectionTestConditions, "en", `Test Parameters`),
	rule(constants.SectionTestConditions, "en", `Test Setup`),
	rule(constants.SectionTestConditions, "en", `Test Environment`),
	rule(constants.SectionTestConditions, "de", `Testbedingungen`),
	rule(constants.SectionTestConditions, "de", `Prüfbedingungen`),
	rule(constants.SectionTestConditions, "de", `Versuchsbedingungen`),
	rule(constants.SectionTestConditions, "de", `Prüfaufbau`),
	rule(constants.SectionTestConditions, "de", `Versuchsaufbau`),
	rule(constants.SectionTestConditions, "de", `Versuchs-\s*und\s*Messbedingungen`),

	// graphs
	rule(constants.SectionGraphs, "tr", `Grafikler`),
	rule(constants.SectionGraphs, "tr", `Şekiller`),
	rule(constants.SectionGraphs, "tr", `Diyagramlar`),
	rule(constants.SectionGraphs, "en", `Graphs`),
	rule(constants.SectionGraphs, "en", `Charts`),
	rule(constants.SectionGraphs, "en", `Figures`),
	rule(constants.SectionGraphs, "en", `Diagrams`),
	rule(constants.SectionGraphs, "de", `Diagramme`),
	rule(constants.SectionGraphs, "de", `Grafiken`),
	rule(constants.SectionGraphs, "de", `Abbildungen`),

	// results
	rule(constants.SectionResults, "tr", `Sonuçlar`),
	rule(constants.SectionResults, "tr", `Test Sonuçları`),
	rule(constants.SectionResults, "tr", `Bulgular`),
	rule(constants.SectionResults, "tr", `Değerlendirme`),
	rule(constants.SectionResults, "en", `Results`),
	rule(constants.SectionResults, "en", `Test Results`),
	rule(constants.SectionResults, "en", `Findings`),
	rule(constants.SectionResults, "en", `Assessment`),
	rule(constants.SectionResults, "en", `Evaluation`),
	rule(constants.SectionResults, "de", `Prüfergebnisse`),
	rule(constants.SectionResults, "de", `Ergebnisse`),
	rule(constants.SectionResults, "de", `Testergebnisse`),
	rule(constants.SectionResults, "de", `Resultate`),
	rule(constants.SectionResults, "de", `Bewertung`),
	rule(constants.SectionResults, "de", `Auswertung`),
	rule(constants.SectionResults, "de", `Zusammenfassung und Bewertung`),

	// load values (the German term also shows up verbatim in TR/EN reports)
	rule(constants.SectionLoadValues, "tr", `Yük\s*Değerleri`),
	rule(constants.SectionLoadValues, "tr", `Yük\s*Verileri`),
	rule(constants.SectionLoadValues, "en", `Load\s*Values?`),
	rule(constants.SectionLoadValues, "en", `Load\s*Data`),
	rule(constants.SectionLoadValues, "en", `Loading\s*Values`),
	rule(constants.SectionLoadValues, "de", `Belastungswerte`),
	rule(constants.SectionLoadValues, "de", `Belastungsdaten`),
	rule(constants.SectionLoadValues, "de", `Belastungsverlauf`),
	rule(constants.SectionLoadValues, "de", `Kraftverlauf`),

	// summary
	rule(constants.SectionSummary, "tr", `Genel Özet`),
	rule(constants.SectionSummary, "tr", `Özet`),
	rule(constants.SectionSummary, "en", `Summary`),
	rule(constants.SectionSummary, "en", `Conclusion`),
	rule(constants.SectionSummary, "en", `Overview`),
	rule(constants.SectionSummary, "de", `Übersicht`),
	rule(constants.SectionSummary, "de", `Fazit`),
}

// subsectionRule is one finer-grained heading inside a section, with one
// pattern per language. The language is identified first, then only that
// language's pattern is applied (English as fallback).
type subsectionRule struct {
	Key      string
	Patterns map[string]*regexp.Regexp
}

func subPatterns(de, en, tr string) map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, 3)
	if de != "" {
		m["de"] = regexp.MustCompile(`(?i)` + de)
	}
	if en != "" {
		m["en"] = regexp.MustCompile(`(?i)` + en)
	}
	if tr != "" {
		m["tr"] = regexp.MustCompile(`(?i)` + tr)
	}
	return m
}

var subsectionRules = []subsectionRule{
	{constants.SubsectionSledDeceleration, subPatterns(
		`Schlittenverzögerung:`,
		`Sled\s+deceleration:`,
		`Kızak\s+(?:gecikmesi|yavaşlaması):`,
	)},
	{constants.SubsectionLoadValues, subPatterns(
		`Belastungswerte:`,
		`Load\s+values:`,
		`Yük\s+değerleri:`,
	)},
	{constants.SubsectionPhotoDocs, subPatterns(
		`Fotodokumentation:`,
		`Photo\s+documentation:`,
		`Fotoğraf\s+dokümantasyonu:`,
	)},
	{constants.SubsectionTestSetup, subPatterns(
		`Abb\.\s*\d+:\s*(?:Aufbau|Setup)`,
		`Fig\.\s*\d+:\s*(?:Setup|Configuration)`,
		`Şekil\s*\d+:\s*(?:Kurulum|Yapılandırma)`,
	)},
}
