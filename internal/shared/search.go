package shared

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldSearch lowercases the term and strips diacritics so "Martínez" matches
// a search for "martinez". Used for ILIKE terms against names.
func FoldSearch(term string) string {
	folded, _, err := transform.String(foldTransformer, term)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(term))
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
