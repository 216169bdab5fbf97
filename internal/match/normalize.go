package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier and strips separators so that
// "order_id", "OrderID" and "order-Id" normalize to "orderid".
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range Fold(s) {
		if !isSeparator(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// TokenizeIdent splits an identifier into folded tokens at separators and
// CamelCase boundaries: "getHTTPResponse" -> ["get", "http", "response"].
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, Fold(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports a lower-to-upper transition ("orderID") or the end of
// an acronym followed by a word ("XMLParser").
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
