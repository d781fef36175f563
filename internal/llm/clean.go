package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var codeBlockRe = regexp.MustCompile("(?i)```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// CleanModelJSON strips markdown fences and any preamble/postamble around the
// first balanced-looking JSON object in a model response.
func CleanModelJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}

	// Unwrap code blocks iteratively so multiple fences all collapse.
	for {
		loc := codeBlockRe.FindStringSubmatchIndex(cleaned)
		if loc == nil {
			break
		}
		inner := strings.TrimSpace(cleaned[loc[2]:loc[3]])
		cleaned = strings.TrimSpace(cleaned[:loc[0]] + inner + cleaned[loc[1]:])
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end != -1 && end >= start {
		cleaned = cleaned[start : end+1]
	}
	return strings.TrimSpace(cleaned)
}

// ExtractJSONObject returns the first-{ to last-} span of text, or "" when no
// object-shaped span exists.
func ExtractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// DecodeObject parses a model response into a JSON object with fallbacks:
// direct parse first, then fence/preamble stripping, then a raw brace
// extraction. Returns the bytes that actually parsed.
func DecodeObject(responseText string, logger *slog.Logger) (map[string]any, []byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw := strings.TrimSpace(responseText)
	if m, ok := tryObject(raw); ok {
		return m, []byte(raw), nil
	}

	logger.Warn("llm.narrative.decode_retry", "stage", "cleaned")
	cleaned := CleanModelJSON(raw)
	if m, ok := tryObject(cleaned); ok {
		return m, []byte(cleaned), nil
	}

	logger.Warn("llm.narrative.decode_retry", "stage", "braces")
	extracted := ExtractJSONObject(cleaned)
	if m, ok := tryObject(extracted); ok {
		return m, []byte(extracted), nil
	}

	return nil, []byte(raw), fmt.Errorf("decode narrative response: no JSON object found")
}

func tryObject(candidate string) (map[string]any, bool) {
	if candidate == "" {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(candidate), &m); err != nil {
		return nil, false
	}
	return m, m != nil
}
