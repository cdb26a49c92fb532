package extractor

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// wordPattern tokenizes the lower-cased, whitespace-normalized text. The
// class is Unicode-aware (RE2's \w is ASCII-only and would split accented
// words mid-token); a token starts and ends on a letter, digit, or
// underscore, with apostrophes and hyphens allowed inside.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_](?:['’\-\p{L}\p{N}_]*[\p{L}\p{N}_])?`)

// stopwords are excluded from term-frequency counting (but still counted
// toward the word total).
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "for": {}, "on": {}, "at": {}, "with": {}, "by": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "it": {}, "this": {},
	"that": {}, "as": {}, "from": {}, "but": {}, "if": {}, "not": {},
	"we": {}, "you": {}, "i": {}, "they": {}, "he": {}, "she": {},
	"them": {}, "his": {}, "her": {}, "our": {}, "their": {}, "my": {},
	"your": {},
}

const (
	maxTopTerms      = 10
	previewSentences = 3
	minTermLength    = 3
)

// Analyze computes lightweight statistics over the given text: rune and word
// counts, sentence count, the ten most frequent non-stopword terms, and a
// three-sentence preview. Pure and total; empty input yields all-zero counts.
func Analyze(text string) AnalysisStats {
	clean := NormalizeWhitespace(text)

	stats := AnalysisStats{
		Characters: utf8.RuneCountInString(clean),
		TopTerms:   []TermCount{},
	}
	if clean == "" {
		return stats
	}

	words := wordPattern.FindAllString(strings.ToLower(clean), -1)
	stats.Words = len(words)

	// Term frequencies over the filtered tokens, first-seen order preserved
	// so that ties rank stably.
	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if utf8.RuneCountInString(w) < minTermLength {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxTopTerms {
		order = order[:maxTopTerms]
	}
	for _, term := range order {
		stats.TopTerms = append(stats.TopTerms, TermCount{Term: term, Count: counts[term]})
	}

	sentences := splitSentences(clean)
	for _, s := range sentences {
		if s != "" {
			stats.Sentences++
		}
	}

	preview := sentences
	if len(preview) > previewSentences {
		preview = preview[:previewSentences]
	}
	stats.Preview = strings.TrimSpace(strings.Join(preview, " "))

	return stats
}

// splitSentences splits on whitespace that immediately follows a terminal
// punctuation mark. A hand scan rather than a regexp because RE2 has no
// lookbehind; the input is already whitespace-normalized, so sentence
// boundaries are a terminal mark followed by a single space.
func splitSentences(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i+1 < len(s); i++ {
		c := s[i]
		if (c == '.' || c == '!' || c == '?') && s[i+1] == ' ' {
			out = append(out, s[start:i+1])
			i++
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
