package kielt

import (
	"regexp"
	"strings"
)

// Terminators for a labeled value: the next heading-looking line, or a
// blank line. Headings start with an uppercase letter or digit and end in
// a colon or dash.
var (
	nextHeading    = regexp.MustCompile(`\n\s*(?:-|\*)?\s*[A-ZÄÖÜ0-9][^:\n]{0,60}\s*[:\-]`)
	blankLine      = regexp.MustCompile(`\n[ \t]*\n`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	subfieldLine   = regexp.MustCompile(`^\s*(?:-|\*)?\s*([A-Za-zÄÖÜäöüß0-9/().,%+\- ]+?)\s*[:=\-]\s*(.+)$`)
	subfieldFoldRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// ExtractSimpleField returns the value following a "Key:" label, cut off at
// the next heading or blank line. Whitespace inside the value is collapsed
// unless collapse is false. Returns "" when the label never matches.
func ExtractSimpleField(text, key string, collapse bool) string {
	key = strings.TrimSpace(key)
	if text == "" || key == "" {
		return ""
	}

	prefix, err := regexp.Compile(`(?im)^\s*(?:-|\*)?\s*` + regexp.QuoteMeta(key) + `\s*(?:[:\-]\s*)?`)
	if err != nil {
		return ""
	}
	loc := prefix.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	rest := text[loc[1]:]
	end := len(rest)
	if m := nextHeading.FindStringIndex(rest); m != nil && m[0] < end {
		end = m[0]
	}
	if m := blankLine.FindStringIndex(rest); m != nil && m[0] < end {
		end = m[0]
	}

	value := strings.TrimSpace(rest[:end])
	if collapse {
		value = whitespaceRun.ReplaceAllString(value, " ")
	}
	return value
}

// matchFirst tries each label in order and returns the first non-empty
// value.
func matchFirst(text string, labels []string) string {
	for _, label := range labels {
		if v := ExtractSimpleField(text, label, true); v != "" {
			return v
		}
	}
	return ""
}

// extractBlock returns the text between a block label and the next blank
// line. labelExpr is a regular expression fragment.
func extractBlock(text, labelExpr string) string {
	re, err := regexp.Compile(`(?is)` + labelExpr + `\s*:?(.*?)(?:\n\s*\n|$)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// normalizeSubfieldKey transliterates German umlauts and reduces the label
// to a snake_case key.
func normalizeSubfieldKey(label string) string {
	s := strings.ToLower(label)
	replacer := strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
	s = replacer.Replace(s)
	s = subfieldFoldRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return strings.TrimSpace(label)
	}
	return s
}

// ExtractSubfields parses "SubKey: SubValue" lines. Unmatched lines are
// appended to the previous key as continuations; a blank line resets the
// continuation state.
func ExtractSubfields(text string) map[string]string {
	pairs := make(map[string]string)
	if text == "" {
		return pairs
	}

	currentKey := ""
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			currentKey = ""
			continue
		}
		if m := subfieldLine.FindStringSubmatch(line); m != nil {
			key := normalizeSubfieldKey(m[1])
			pairs[key] = whitespaceRun.ReplaceAllString(strings.TrimSpace(m[2]), " ")
			currentKey = key
			continue
		}
		if currentKey != "" {
			continuation := whitespaceRun.ReplaceAllString(stripped, " ")
			pairs[currentKey] = strings.TrimSpace(pairs[currentKey] + " " + continuation)
		}
	}
	return pairs
}

// extractNestedSection returns the indented body below a heading, one
// trimmed line per row. Falls back to the simple field value when the
// heading has no indented body.
func extractNestedSection(text, heading string) string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(heading) + `\s*:?((?:\r?\n[^\S\n]{2,}.+)+)`)
	if err != nil {
		return ""
	}
	if m := re.FindStringSubmatch(text); m != nil {
		var lines []string
		for _, line := range strings.Split(m[1], "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		return strings.Join(lines, "\n")
	}
	return ExtractSimpleField(text, heading, false)
}

// extractPatternValue runs one value-capturing expression and collapses the
// captured whitespace.
func extractPatternValue(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for i, name := range re.SubexpNames() {
		if name == "value" {
			return whitespaceRun.ReplaceAllString(strings.TrimSpace(m[i]), " ")
		}
	}
	return ""
}
