package validators

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeStringTrimsAndCaps(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeStringKeepsValidUTF8(t *testing.T) {
	// Each rune below is multi-byte; a byte-boundary cut would split one.
	input := strings.Repeat("ह", 10)
	for maxLen := 1; maxLen < len(input); maxLen++ {
		got := SanitizeString(input, maxLen)
		if !utf8.ValidString(got) {
			t.Fatalf("maxLen %d produced invalid UTF-8: %q", maxLen, got)
		}
		if len(got) > maxLen {
			t.Fatalf("maxLen %d exceeded: %d bytes", maxLen, len(got))
		}
	}
}
