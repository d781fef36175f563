package assemble

import "github.com/seatsafety/report-analyzer/constants"

// sectionStrings is the per-language placeholder copy substituted when a
// report section or narrative input is missing. Keys are shared across
// languages.
var sectionStrings = map[string]map[string]string{
	"tr": {
		"no_test_conditions":   "Test koşullarına ilişkin belirgin bilgi bulunamadı.",
		"no_graphs":            "Grafikler hakkında açık bilgi yok.",
		"no_results":           "Test sonuçları metin içerisinde tespit edilemedi.",
		"no_detailed":          "Detaylı teknik veri bölümü bulunamadı.",
		"conditions_intro":     "Metinden çıkarılan test koşulları:",
		"graphs_intro":         "Grafiklere ilişkin öne çıkan noktalar:",
		"results_intro":        "Test sonuçlarının özet tablosu:",
		"appendix":             "Ek teknik veriler:",
		"improvements_intro":   "Önerilen geliştirme maddeleri:",
		"improvements_fail":    "Belirlenen riskleri gidermek için test parametrelerini, ölçüm cihazlarını ve standart referanslarını gözden geçirin.",
		"improvements_success": "Test sonuçları olumlu; mevcut validasyon sürecini koruyabilirsiniz.",
	},
	"en": {
		"no_test_conditions":   "No explicit test condition details were detected.",
		"no_graphs":            "There is no explicit information about charts or graphs.",
		"no_results":           "Detailed test results were not identified in the document.",
		"no_detailed":          "No additional technical data section was detected.",
		"conditions_intro":     "Extracted test condition highlights:",
		"graphs_intro":         "Key points related to charts/figures:",
		"results_intro":        "Summary table of the reported test outcomes:",
		"appendix":             "Additional technical observations:",
		"improvements_intro":   "Recommended improvement actions:",
		"improvements_fail":    "Review acceptance criteria, instrumentation and repeat the tests focusing on the flagged measurements.",
		"improvements_success": "All findings look positive; keep the current validation workflow stable.",
	},
	"de": {
		"no_test_conditions":   "Es konnten keine eindeutigen Prüfbedingungen erkannt werden.",
		"no_graphs":            "Im Bericht wurden keine klaren Angaben zu Diagrammen gefunden.",
		"no_results":           "Ausführliche Testergebnisse wurden nicht identifiziert.",
		"no_detailed":          "Es wurde kein Abschnitt mit zusätzlichen technischen Daten gefunden.",
		"conditions_intro":     "Hervorhebungen zu den Prüfbedingungen:",
		"graphs_intro":         "Wesentliche Hinweise zu Diagrammen/Grafiken:",
		"results_intro":        "Zusammenfassung der berichteten Testergebnisse:",
		"appendix":             "Zusätzliche technische Beobachtungen:",
		"improvements_intro":   "Empfohlene Verbesserungsmaßnahmen:",
		"improvements_fail":    "Überprüfen Sie Grenzwerte, Messaufbauten und wiederholen Sie die Tests mit Fokus auf die auffälligen Messwerte.",
		"improvements_success": "Die Ergebnisse wirken positiv; halten Sie den aktuellen Prüfablauf bei.",
	},
}

// summaryLabels names the localized report headings shown above each
// narrative block.
var summaryLabels = map[string]map[string]string{
	"tr": {
		"summary":      "Genel Özet",
		"conditions":   "Test Koşulları",
		"improvements": "İyileştirme Önerileri",
		"technical":    "Teknik Analiz Detayları",
		"highlights":   "Öne Çıkan Bulgular",
		"failures":     "Kritik Testler",
	},
	"en": {
		"summary":      "Summary",
		"conditions":   "Test Conditions",
		"improvements": "Improvement Suggestions",
		"technical":    "Technical Analysis Details",
		"highlights":   "Key Highlights",
		"failures":     "Critical Tests",
	},
	"de": {
		"summary":      "Zusammenfassung",
		"conditions":   "Testbedingungen",
		"improvements": "Verbesserungsvorschläge",
		"technical":    "Technische Analyse",
		"highlights":   "Wesentliche Erkenntnisse",
		"failures":     "Kritische Tests",
	},
}

// NormalizeLanguage clamps a language tag to one of the supported
// languages, defaulting to Turkish.
func NormalizeLanguage(language string) string {
	if _, ok := sectionStrings[language]; ok {
		return language
	}
	return constants.DefaultLanguage
}

// Strings returns the placeholder table for a language.
func Strings(language string) map[string]string {
	return sectionStrings[NormalizeLanguage(language)]
}

// Labels returns the localized heading labels for a language.
func Labels(language string) map[string]string {
	return summaryLabels[NormalizeLanguage(language)]
}
