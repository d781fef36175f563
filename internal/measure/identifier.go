package measure

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markStripper folds accented characters to their base letter so the same
// row label matches whether the source text kept its umlauts or lost them
// in extraction.
var markStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeIdentifier lowercases, folds diacritics, expands ß and reduces
// every non-alphanumeric run to a single space.
func NormalizeIdentifier(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "ß", "ss")
	if folded, _, err := transform.String(markStripper, s); err == nil {
		s = folded
	}
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
		} else if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
