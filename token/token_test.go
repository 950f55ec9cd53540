package token

import "testing"

// Test looking up keywords succeeds, then fails for a plain identifier.
func TestLookupKeyword(t *testing.T) {

	for lexeme, want := range keywords {

		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Errorf("expected %s to be a keyword", lexeme)
		}
		if got != want {
			t.Errorf("lookup of %s failed: got %s, want %s", lexeme, got, want)
		}
	}

	if _, ok := LookupKeyword("counter"); ok {
		t.Errorf("'counter' should not resolve to a keyword")
	}
}

// Test Lexeme and Is read back the right slice of the source buffer.
func TestLexeme(t *testing.T) {
	src := "a + 12"

	plus := Token{Kind: RESERVED, Start: 2, Len: 1}
	if plus.Lexeme(src) != "+" {
		t.Errorf("expected lexeme '+', got %q", plus.Lexeme(src))
	}
	if !plus.Is(src, "+") {
		t.Errorf("expected Is(src, \"+\") to be true")
	}
	if plus.Is(src, "-") {
		t.Errorf("expected Is(src, \"-\") to be false")
	}

	num := Token{Kind: NUMBER, Start: 4, Len: 2, Value: 12}
	if num.Lexeme(src) != "12" {
		t.Errorf("expected lexeme '12', got %q", num.Lexeme(src))
	}
}
