package extractor

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// controlChars matches the C0 control range and DEL, which break JSON
// transport and LLM prompts.
var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// smartPunctuation maps curly quotes and em/en dashes to their ASCII forms.
var smartPunctuation = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"—", "-",
	"–", "-",
)

// NormalizeWhitespace replaces every run of whitespace (including newlines
// and tabs) with a single space and trims the ends. Idempotent.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ToJSONReady converts raw text into a clean, JSON-safe string:
// control-character stripping, whitespace normalization, smart-punctuation
// normalization. Control characters go first so a stripped character flanked
// by spaces cannot leave a double space behind. Total and idempotent; empty
// input yields "".
func ToJSONReady(s string) string {
	if s == "" {
		return ""
	}
	s = controlChars.ReplaceAllString(s, "")
	s = NormalizeWhitespace(s)
	return smartPunctuation.Replace(s)
}

// ToSentenceReady applies ToJSONReady and ensures the result ends with
// exactly one terminal period, as sentence-based scoring APIs expect.
func ToSentenceReady(s string) string {
	s = ToJSONReady(s)
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		s = s[:len(s)-1] + "."
	}
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
