package provider

import (
	"fmt"
	"strings"
)

var prioritySources = []string{
	"PolitiFact",
	"FactCheck.org",
	"Snopes",
	"The Washington Post Fact Checker",
	"Reuters Fact Check",
	"Full Fact",
	"Quote Investigator",
	"official government sources",
	"peer-reviewed research",
	"major reputable news organizations",
}

const scoringRubric = `CONFIDENCE & RELIABILITY SCORING (0-100)
Use these bands for both per-claim Confidence and Overall Reliability:
  95-100: Established fact
  85-94 : Very likely
  70-84 : Likely
  55-69 : Uncertain / Mixed
  35-54 : Doubtful
  15-34 : Unlikely
  0-14  : False / Unsupported

Checklist for scoring (apply to each claim and the overall text):
  - Source Quality: primary/official > peer-reviewed > major media > other > social/blogs
  - Independence & Count: more independent, agreeing sources -> higher
  - Consensus: alignment among reputable fact-checkers/experts -> higher
  - Recency/Relevance: current enough for the domain -> higher
  - Specificity/Verifiability: concrete, measurable claims -> higher
  - Conflict: credible contradictory evidence -> lower`

// buildFactCheckPrompt produces the instruction sent to the model: extract
// the top N checkable sentences, fact-check each against at least minSources
// cited sources, and answer as a single JSON object.
func buildFactCheckPrompt(text string, topN, minSources int) string {
	var sb strings.Builder

	sb.WriteString("You are a fact-checking system.\n\n")
	fmt.Fprintf(&sb, "GOAL\nFrom the provided text, identify and fact-check the TOP %d claimworthy sentences.\n", topN)
	fmt.Fprintf(&sb, "If fewer than %d claimworthy sentences exist, return only those found. DO NOT invent claims, sources, or padding.\n\n", topN)

	sb.WriteString(`SELECTION RULES
- A "claimworthy sentence" is a statement that can be checked against evidence.
- Prioritize sentences that are (a) specific & measurable, (b) consequential/impactful, and (c) likely to be verifiable with reliable sources.
- Exclude opinions, vague generalities, rhetorical questions, and style-only remarks.

TASK
For each selected claim, provide:
- Rank (1 = highest priority)
- Sentence
- Verdict: True | False | Misleading | Unverified
- Confidence: 0-100 using the standardized rubric below
- Confidence Band: map the numeric score to a band using the band table below
- Reasoning: concise (1-3 sentences) explaining the verdict and key evidence
`)
	fmt.Fprintf(&sb, "- Sources: at least %d recent, reliable sources with direct links.\n", minSources)
	fmt.Fprintf(&sb, "  PRIORITIZE these fact-checking authorities and then others as needed:\n  %s.\n\n", strings.Join(prioritySources, ", "))

	sb.WriteString(`EVIDENCE REQUIREMENTS
- Use the most up-to-date information available.
- Prefer primary sources (official data, documents) and reputable secondary sources.
- If evidence is mixed or insufficient, choose "Unverified" or "Misleading" and explain why.
- Do not fabricate sources or links. If a link is unavailable, say so and adjust the verdict.

`)
	sb.WriteString(scoringRubric)
	sb.WriteString("\n\nOVERALL ASSESSMENT\nProvide a single Overall Reliability score (0-100), the corresponding band label, and a brief paragraph summarizing the overall reliability of the text (note uncertainty, conflicts, and data gaps).\n\n")

	fmt.Fprintf(&sb, `OUTPUT FORMAT
Return a single JSON object, with no surrounding prose or code fences:
{
  "claims": [
    {
      "rank": int,
      "sentence": str,
      "verdict": "True" | "False" | "Misleading" | "Unverified",
      "confidence": int,
      "confidence_band": str,
      "reasoning": str,
      "sources": [str]
    }
  ],
  "overall_reliability": {
    "score": int,
    "band": str,
    "summary": str
  }
}
"claims" holds at most %d entries; "sources" holds at least %d entries per claim.

TEXT TO ANALYZE
"""%s"""`, topN, minSources, strings.TrimSpace(text))

	return sb.String()
}
