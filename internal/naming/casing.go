// Package naming holds the case transformations exposed to templates as the
// titlecase and snakecase filters. Both functions are pure.
package naming

import (
	"strings"
	"unicode"
)

// TitleCase capitalizes the character at every word boundary and drops all
// separators, e.g. "getLastCallInfo" -> "GetLastCallInfo" and
// "static method_1" -> "StaticMethod1".
//
// A boundary is the start of the string, an uppercase letter (kept as is),
// or the first letter or digit after a run of non-word characters. Anything
// that is neither a letter nor a digit is a separator, whitespace and
// underscores included.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	boundary := true
	for _, r := range s {
		if !isWordRune(r) {
			boundary = true
			continue
		}
		if boundary {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		boundary = false
	}
	return b.String()
}

// SnakeCase splits an identifier into lowercase words joined by underscores.
// Handles acronyms as a single word (e.g., "HTTPRequest" -> "http_request")
// and lowercases input that is already delimited ("Foo_Bar" -> "foo_bar").
func SnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// Words splits s into its words. A lowercase letter or digit followed by an
// uppercase letter starts a new word; inside an uppercase run only the last
// letter before a lowercase one starts a new word, so acronyms stay whole.
// Separators never appear in the result.
func Words(s string) []string {
	runes := []rune(s)
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
