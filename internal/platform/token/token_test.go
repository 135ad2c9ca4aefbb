package token

import (
	"regexp"
	"testing"
)

func TestNewShape(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !hex32.MatchString(tok) {
		t.Fatalf("token %q is not 32 lowercase hex chars", tok)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		tok, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d mints: %q", i, tok)
		}
		seen[tok] = true
	}
}
