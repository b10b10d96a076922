package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldKey case-folds s and collapses runs of whitespace, so that
// "  Sell   &  shop " and "sell & Shop" compare equal.
// Casers and transformers are stateful, so a fresh one is built per call.
func foldKey(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// stripKey reduces s to folded, accent-free alphanumerics. "&" reads as
// "and", so "Sell & Shop", "sell_and_shop" and "sellAndShop" share a key.
func stripKey(s string) string {
	s = removeAccents(cases.Fold().String(s))
	s = strings.ReplaceAll(s, "&", "and")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// removeAccents drops combining marks: "Bien-être" becomes "Bien-etre".
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
