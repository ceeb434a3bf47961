// Package morsecode holds the ITU Morse alphabet and the text/symbol
// tokenizers shared by the decoder and the synthesizer.
package morsecode

import "strings"

// entry pairs a character with its dot/dash code, mirroring the shape of
// audio_extensions/morse's morseTable but keyed in the encode direction too.
type entry struct {
	ch   byte
	code string
}

var table = []entry{
	{'A', ".-"}, {'B', "-..."}, {'C', "-.-."}, {'D', "-.."}, {'E', "."},
	{'F', "..-."}, {'G', "--."}, {'H', "...."}, {'I', ".."}, {'J', ".---"},
	{'K', "-.-"}, {'L', ".-.."}, {'M', "--"}, {'N', "-."}, {'O', "---"},
	{'P', ".--."}, {'Q', "--.-"}, {'R', ".-."}, {'S', "..."}, {'T', "-"},
	{'U', "..-"}, {'V', "...-"}, {'W', ".--"}, {'X', "-..-"}, {'Y', "-.--"},
	{'Z', "--.."},
	{'0', "-----"}, {'1', ".----"}, {'2', "..---"}, {'3', "...--"},
	{'4', "....-"}, {'5', "....."}, {'6', "-...."}, {'7', "--..."},
	{'8', "---.."}, {'9', "----."},
	{'/', "-..-."}, {'?', "..--.."}, {'=', "-...-"}, {'.', ".-.-.-"},
	{',', "--..--"}, {'-', "-....-"},
}

// CodeTable maps an encode/decode pair: letter-to-code and code-to-letter.
// It is rebuilt per-instance so the prosign literal can be injected without
// mutating shared global state.
type CodeTable struct {
	encode map[byte]string
	decode map[string]string
}

// New builds a CodeTable with the ITU subset plus one synthetic decode-only
// entry: the concatenation of the prosign literal's letter codes maps to
// "<LITERAL>". Per spec.md §4.3, this is injected at construction time so
// encoder and decoder stay driven from a single configuration literal.
func New(prosignLiteral string) *CodeTable {
	t := &CodeTable{
		encode: make(map[byte]string, len(table)),
		decode: make(map[string]string, len(table)),
	}
	for _, e := range table {
		t.encode[e.ch] = e.code
		t.decode[e.code] = string(e.ch)
	}
	if lit := strings.ToUpper(strings.TrimSpace(prosignLiteral)); lit != "" {
		if code, ok := t.ConcatCode(lit); ok {
			t.decode[code] = "<" + lit + ">"
		}
	}
	return t
}

// Encode returns the dot/dash code for an uppercase ASCII character and
// whether it was found.
func (t *CodeTable) Encode(ch byte) (string, bool) {
	code, ok := t.encode[ch]
	return code, ok
}

// Decode looks up a completed dot/dash symbol, returning the decoded token
// (a single letter, or a bracketed prosign) and whether it was found.
func (t *CodeTable) Decode(symbol string) (string, bool) {
	s, ok := t.decode[symbol]
	return s, ok
}

// ConcatCode concatenates the letter codes of a literal with no intra-symbol
// gap, as required to build the prosign's synthetic decode entry. Returns
// false if any letter in lit has no code.
func (t *CodeTable) ConcatCode(lit string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(lit); i++ {
		code, ok := t.encode[lit[i]]
		if !ok {
			return "", false
		}
		b.WriteString(code)
	}
	return b.String(), true
}
