package extractor

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source types assigned once per request, before dispatch.
const (
	SourcePlainText = "plain_text"
	SourceWebURL    = "web_url"
	SourceYouTube   = "youtube_url"
)

// TermCount is one (term, count) pair of the term-frequency ranking.
// It marshals as a two-element array to keep the original wire format.
type TermCount struct {
	Term  string
	Count int
}

// MarshalJSON encodes the pair as ["term", count].
func (tc TermCount) MarshalJSON() ([]byte, error) {
	term, err := json.Marshal(tc.Term)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("[%s,%d]", term, tc.Count)), nil
}

// UnmarshalJSON decodes the ["term", count] pair form.
func (tc *TermCount) UnmarshalJSON(data []byte) error {
	var pair [2]jsoniter.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &tc.Term); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &tc.Count)
}

// AnalysisStats holds lightweight structural statistics over sanitized text.
type AnalysisStats struct {
	Characters int         `json:"characters"`
	Words      int         `json:"words"`
	Sentences  int         `json:"sentences"`
	TopTerms   []TermCount `json:"top_terms"`
	Preview    string      `json:"preview"`
}

// VideoMetadata is the optional metadata block attached to youtube_url results.
type VideoMetadata struct {
	VideoID      string `json:"video_id"`
	LanguageCode string `json:"language_code,omitempty"`
}

// ExtractionResult is the unit of output of the pipeline. Constructed fresh
// per request and never mutated after assembly.
type ExtractionResult struct {
	SourceType    string         `json:"source_type"`
	Text          string         `json:"text"`
	JSONReadyText string         `json:"json_ready_text"`
	Analysis      AnalysisStats  `json:"analysis"`
	Warnings      []string       `json:"warnings"`
	Metadata      *VideoMetadata `json:"metadata,omitempty"`
}

// TranscriptResult is the intermediate product of the transcript fetcher:
// the chosen track's language and its caption text with bracketed
// annotations removed.
type TranscriptResult struct {
	LanguageCode string
	Transcript   string
}

// ArticleSource retrieves main-body text from a generic web URL.
type ArticleSource interface {
	Article(ctx context.Context, pageURL string) (string, error)
}

// TranscriptSource retrieves caption data for a video identifier.
// Transcript returns nil when no transcript exists or could be retrieved;
// the distinct reasons are logged, not surfaced. Language reports the
// language code the same track selection would pick, or "" when none.
type TranscriptSource interface {
	Transcript(ctx context.Context, videoID string) *TranscriptResult
	Language(ctx context.Context, videoID string) string
}
