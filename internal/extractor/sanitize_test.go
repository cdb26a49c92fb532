package extractor

import (
	"strings"
	"testing"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"Hello   world.", "Hello world."},
		{"line\none\n\nline two", "line one line two"},
		{"\ttabbed\t text \t", "tabbed text"},
		{"  Hello   world.  ", "Hello world."},
	}
	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.input); got != tt.want {
			t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeWhitespaceIdempotent(t *testing.T) {
	inputs := []string{
		"Hello   world.",
		"  a\tb\nc  ",
		"already clean",
		"",
	}
	for _, in := range inputs {
		once := NormalizeWhitespace(in)
		twice := NormalizeWhitespace(once)
		if once != twice {
			t.Errorf("NormalizeWhitespace not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestToJSONReady(t *testing.T) {
	got := ToJSONReady("“Smart” quotes — and\x00control\x1fchars\t here")
	if strings.ContainsAny(got, "\x00\x1f\t“”‘’—–") {
		t.Errorf("ToJSONReady left forbidden characters in %q", got)
	}
	if got != `"Smart" quotes - andcontrolchars here` {
		t.Errorf("ToJSONReady = %q", got)
	}

	// A stripped control character must not leave a double space behind.
	if got := ToJSONReady("a \x01 b"); got != "a b" {
		t.Errorf("ToJSONReady(\"a \\x01 b\") = %q, want %q", got, "a b")
	}

	if ToJSONReady("") != "" {
		t.Error("ToJSONReady(\"\") should be empty")
	}
}

func TestToJSONReadyIdempotent(t *testing.T) {
	inputs := []string{
		"a \x01 b",
		"“Smart” quotes — and\x00control\x1fchars\t here",
		"  plain   text  ",
		"already clean",
		"",
	}
	for _, in := range inputs {
		once := ToJSONReady(in)
		twice := ToJSONReady(once)
		if once != twice {
			t.Errorf("ToJSONReady not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestToSentenceReady(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Hello", "Hello."},
		{"Hello.", "Hello."},
		{"Hello!", "Hello."},
		{"Hello?", "Hello."},
		{"  Hello   world  ", "Hello world."},
	}
	for _, tt := range tests {
		if got := ToSentenceReady(tt.input); got != tt.want {
			t.Errorf("ToSentenceReady(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
