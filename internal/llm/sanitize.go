package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

const maxHighlights = 5

// SanitizeNarrativeJSON
// - Renames known synonyms (conditions -> test_conditions)
// - Drops null/empty sections
// - Coerces stray non-string section values to strings
// - Clamps highlights to the schema maximum and drops blank entries
// - Removes unknown keys (strict additionalProperties = false friendliness)
func SanitizeNarrativeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to the schema keys
	renamed("conditions", "test_conditions")
	renamed("graph_analysis", "graphs")
	renamed("test_results", "results")
	renamed("detailed", "detailed_data")
	renamed("recommendations", "improvements")

	// 2) coerce section values to trimmed strings; drop null / ""
	sections := []string{"summary", "test_conditions", "graphs", "results", "detailed_data", "improvements"}
	for _, k := range sections {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case []any:
			// some models return a section as a list of lines
			lines := make([]string, 0, len(t))
			for _, e := range t {
				if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
					lines = append(lines, strings.TrimSpace(s))
				}
			}
			if len(lines) == 0 {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = strings.Join(lines, "\n")
				dropped = append(dropped, k+"(joined)")
			}
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	// 3) highlights: keep non-blank strings, clamp to the maximum
	if v, ok := m["highlights"]; ok {
		items, _ := v.([]any)
		kept := make([]string, 0, maxHighlights)
		for _, e := range items {
			s, ok := e.(string)
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
			kept = append(kept, strings.TrimSpace(s))
			if len(kept) == maxHighlights {
				break
			}
		}
		if len(kept) == 0 {
			delete(m, "highlights")
			dropped = append(dropped, "highlights(empty)")
		} else {
			m["highlights"] = kept
		}
	}

	// 4) remove unknown keys
	allowed := map[string]struct{}{
		"summary": {}, "test_conditions": {}, "graphs": {}, "results": {},
		"detailed_data": {}, "improvements": {}, "highlights": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.narrative.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
