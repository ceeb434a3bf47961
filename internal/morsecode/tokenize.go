package morsecode

import (
	"strings"
	"unicode"
)

// Tokenize splits text into uppercase tokens: contiguous alphanumeric/
// punctuation runs, or a single bracketed prosign token "<XYZ>". Whitespace
// is a separator and is otherwise collapsed, per spec.md §3's token
// definition.
func Tokenize(text string) []string {
	var tokens []string
	runes := []rune(strings.ToUpper(text))
	for i := 0; i < len(runes); {
		switch {
		case unicode.IsSpace(runes[i]):
			i++
		case runes[i] == '<':
			j := i + 1
			for j < len(runes) && runes[j] != '>' {
				j++
			}
			if j < len(runes) {
				tokens = append(tokens, string(runes[i:j+1]))
				i = j + 1
			} else {
				// Unterminated prosign bracket: treat '<' as ordinary text.
				i++
			}
		default:
			j := i
			for j < len(runes) && !unicode.IsSpace(runes[j]) && runes[j] != '<' {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		}
	}
	return tokens
}

// CompactProjection normalizes a run of RX tokens into the compact form used
// for pattern acceptance (spec.md §4.6): uppercase, angle brackets stripped
// from prosign tokens, all whitespace removed, and (when stripHyphens is
// true) hyphens removed so park references match whether sent
// character-by-character or run together.
func CompactProjection(tokens []string, stripHyphens bool) string {
	var b strings.Builder
	for _, tok := range tokens {
		t := strings.ToUpper(tok)
		t = strings.TrimPrefix(t, "<")
		t = strings.TrimSuffix(t, ">")
		if stripHyphens {
			t = strings.ReplaceAll(t, "-", "")
		}
		b.WriteString(t)
	}
	return b.String()
}
