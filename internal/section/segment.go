// Package section splits raw report text into the fixed set of report
// sections using multilingual heading tables, and identifies the report
// language from heading hit counts.
package section

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/seatsafety/report-analyzer/constants"
	"github.com/seatsafety/report-analyzer/internal/report"
)

// headingHit is one located heading occurrence.
type headingHit struct {
	Category constants.SectionCategory
	Start    int
	End      int
}

// DetectSections segments text into the fixed section categories. Every
// category key is present in the result; categories without a matched
// heading map to the empty string. When no heading matches at all, the
// whole document is returned under test_conditions.
func DetectSections(text string, logger *slog.Logger) report.SectionMap {
	if logger == nil {
		logger = slog.Default()
	}
	sections := report.EmptySections()
	if strings.TrimSpace(text) == "" {
		return sections
	}

	hits := locateHeadings(text)
	if len(hits) == 0 {
		logger.Debug("section.detect.fallback", "reason", "no headings matched")
		sections[constants.SectionTestConditions] = strings.TrimSpace(text)
		return sections
	}

	for _, hit := range hits {
		start := contentStart(text, hit.End)
		end := nextBoundary(hits, hit.Category, hit.Start, len(text))
		if end < start {
			end = start
		}
		content := strings.TrimSpace(text[start:end])
		if content != "" {
			sections[hit.Category] = content
		}
	}

	matched := 0
	for _, cat := range constants.SectionCategories {
		if sections[cat] != "" {
			matched++
		}
	}
	logger.Debug("section.detect.done", "matched", matched)
	return sections
}

// locateHeadings returns the earliest heading occurrence per category,
// sorted by text position.
func locateHeadings(text string) []headingHit {
	earliest := make(map[constants.SectionCategory]headingHit)
	for _, r := range headingRules {
		loc := r.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		hit, ok := earliest[r.Category]
		if !ok || loc[0] < hit.Start {
			earliest[r.Category] = headingHit{Category: r.Category, Start: loc[0], End: loc[1]}
		}
	}
	hits := make([]headingHit, 0, len(earliest))
	for _, h := range earliest {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Start < hits[j].Start })
	return hits
}

// contentStart skips the remainder of the heading line so the section body
// begins on the following line.
func contentStart(text string, headingEnd int) int {
	if nl := strings.IndexByte(text[headingEnd:], '\n'); nl >= 0 {
		return headingEnd + nl + 1
	}
	return len(text)
}

// nextBoundary finds the start of the nearest heading of a different
// category after from, or fallback when this section runs to the end.
func nextBoundary(hits []headingHit, cat constants.SectionCategory, from, fallback int) int {
	end := fallback
	for _, h := range hits {
		if h.Category == cat || h.Start <= from {
			continue
		}
		if h.Start < end {
			end = h.Start
		}
	}
	return end
}

// DetectSubsections applies the finer-grained markers of the identified
// language (English when the language has no marker) to a section body.
// Marker content runs from just after the marker to the next marker.
func DetectSubsections(text string, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}
	subsections := make(map[string]string)
	if strings.TrimSpace(text) == "" {
		return subsections
	}
	lang := IdentifyLanguage(text)

	type marker struct {
		key   string
		start int
		end   int
	}
	var markers []marker
	for _, r := range subsectionRules {
		p, ok := r.Patterns[lang]
		if !ok {
			p = r.Patterns["en"]
		}
		if p == nil {
			continue
		}
		if loc := p.FindStringIndex(text); loc != nil {
			markers = append(markers, marker{key: r.Key, start: loc[0], end: loc[1]})
		}
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].start < markers[j].start })

	for i, m := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		content := strings.TrimSpace(text[m.end:end])
		if _, seen := subsections[m.key]; !seen && content != "" {
			subsections[m.key] = content
		}
	}
	logger.Debug("section.subsections.done", "language", lang, "count", len(subsections))
	return subsections
}

// IdentifyLanguage counts heading pattern hits per language and returns the
// language with the most hits. Ties and zero hits resolve to the default
// language.
func IdentifyLanguage(text string) string {
	counts := make(map[string]int, len(constants.Languages))
	for _, r := range headingRules {
		counts[r.Language] += len(r.Pattern.FindAllStringIndex(text, -1))
	}
	lang := constants.DefaultLanguage
	best := counts[lang]
	for _, candidate := range constants.Languages {
		if counts[candidate] > best {
			lang = candidate
			best = counts[candidate]
		}
	}
	return lang
}
