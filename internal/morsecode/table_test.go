package morsecode

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ct := New("KN")
	for ch := byte('A'); ch <= 'Z'; ch++ {
		code, ok := ct.Encode(ch)
		if !ok {
			t.Fatalf("no code for %c", ch)
		}
		decoded, ok := ct.Decode(code)
		if !ok || decoded != string(ch) {
			t.Fatalf("round-trip failed for %c: got %q", ch, decoded)
		}
	}
}

func TestProsignDecodesToBracketedLiteral(t *testing.T) {
	ct := New("KN")
	code, ok := ct.ConcatCode("KN")
	if !ok {
		t.Fatalf("expected KN to have a concatenated code")
	}
	decoded, ok := ct.Decode(code)
	if !ok || decoded != "<KN>" {
		t.Fatalf("expected <KN>, got %q", decoded)
	}
}

func TestUnknownSymbolNotFound(t *testing.T) {
	ct := New("KN")
	if _, ok := ct.Decode("......."); ok {
		t.Fatalf("expected no match for a nonsense symbol")
	}
}

func TestTokenizeSplitsOnSpaceAndProsign(t *testing.T) {
	got := Tokenize("cq pota de <kn>")
	want := []string{"CQ", "POTA", "DE", "<KN>"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCompactProjectionStripsHyphenAndBrackets(t *testing.T) {
	got := CompactProjection([]string{"<cave>", "US-0001"}, true)
	if got != "CAVEUS0001" {
		t.Fatalf("got %q", got)
	}
}
