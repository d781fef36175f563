// Package numparse converts locale-ambiguous numeric strings into floats.
//
// Source documents mix German ("1.234,56"), English ("1,234.56") and plain
// ("58.15") spellings, sometimes with non-breaking spaces as group
// separators. The rules here decide the role of each separator from its
// position instead of assuming a locale.
package numparse

import (
	"strconv"
	"strings"
)

// Normalize returns the canonical dot-decimal candidate for raw and whether
// raw looked numeric at all. The candidate is returned even when the final
// float conversion would fail so callers can log it.
func Normalize(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, " ", "")
	if text == "" {
		return "", false
	}

	sign := ""
	switch text[0] {
	case '-':
		sign = "-"
		text = text[1:]
	case '+':
		text = text[1:]
	}

	digits := strings.ReplaceAll(text, " ", "")
	if digits == "" || !isDigitsAndSeparators(digits) {
		return "", false
	}

	commaPos := strings.LastIndexByte(digits, ',')
	dotPos := strings.LastIndexByte(digits, '.')

	normalized := digits
	switch {
	case commaPos != -1 && dotPos != -1:
		// Whichever separator is rightmost is the decimal one.
		if commaPos > dotPos {
			normalized = strings.ReplaceAll(digits, ".", "")
			normalized = strings.ReplaceAll(normalized, ",", ".")
		} else {
			normalized = strings.ReplaceAll(digits, ",", "")
		}
	case commaPos != -1:
		// A single comma with one or two trailing digits is a decimal
		// separator; anything else is thousands grouping.
		fractional := len(digits) - commaPos - 1
		if strings.Count(digits, ",") == 1 && fractional > 0 && fractional <= 2 {
			normalized = strings.ReplaceAll(digits, ",", ".")
		} else {
			normalized = strings.ReplaceAll(digits, ",", "")
		}
	}

	return sign + normalized, true
}

// Decimal parses raw into a float64. The second result is false when raw is
// not a parseable number; the caller decides whether to log the miss. A zero
// value is never returned for unparseable input.
func Decimal(raw string) (float64, bool) {
	candidate, ok := Normalize(raw)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(candidate, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Degrees parses an angle value that may carry a degree symbol.
func Degrees(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "°", ""))
	if cleaned == "" {
		return 0, false
	}
	return Decimal(cleaned)
}

func isDigitsAndSeparators(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != ',' {
			return false
		}
	}
	return true
}
