package folio

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/rangetable"
)

// symbolRunes are the runes a ticker symbol is made of: ASCII letters and
// digits, and Hangul for local listings.
var symbolRunes = rangetable.Merge(
	rangetable.New([]rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")...),
	unicode.Hangul,
)

// NormalizeSymbol drops every rune that cannot be part of a ticker symbol and
// upper-cases the rest. It returns "" if nothing is left.
func NormalizeSymbol(s string) string {
	t := transform.Chain(runes.Remove(runes.NotIn(symbolRunes)), cases.Upper(language.Und))
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}
