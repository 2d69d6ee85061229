package textproc

import (
	"fmt"
	"strings"
	"unicode"
)

// Normalize reduces a raw review field to a whitespace-joined sequence
// of lowercase lemmas with stopwords removed. Non-string inputs are
// stringified rather than rejected, so the function never fails; an
// empty string is a valid result for empty or symbol-only input.
func Normalize(v any) string {
	text := stringify(v)
	text = strings.ToLower(text)
	text = stripNonWord(text)

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if IsStopword(tok) {
			continue
		}
		tokens = append(tokens, Lemma(tok))
	}

	return strings.Join(tokens, " ")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// stripNonWord keeps word characters (letters, digits, underscore) and
// whitespace, dropping everything else. Mirrors the \w\s character
// classes used across the cleaning stages.
func stripNonWord(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
