// Package normalize holds the single name-matching rule shared by import
// consolidation, the offer matrix and the historical price lookup.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NameKey folds a product or unit name into its matching key: full-width
// characters are narrowed, diacritics dropped, case folded and runs of
// whitespace collapsed. "  Feijão  CARIOCA " and "feijao carioca" share a key.
func NameKey(s string) string {
	// Transformers keep state, so the chain is built per call.
	t := transform.Chain(width.Fold, norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// SameName reports whether two names share a key.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}
