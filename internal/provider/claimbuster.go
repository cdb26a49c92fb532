// Package provider holds the clients for the external verification services:
// ClaimBuster check-worthiness scoring, the Google Fact Check Tools API, and
// an LLM-backed fact checker.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/extractor"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UpstreamError wraps a failure of an external verification service.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// SentenceScore is one sentence with its ClaimBuster check-worthiness score.
type SentenceScore struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// ClaimBuster scores sentences for check-worthiness via the ClaimBuster API.
type ClaimBuster struct {
	client  *http.Client
	apiKey  string
	baseURL string
	timeout time.Duration
}

// NewClaimBuster creates a ClaimBuster client.
func NewClaimBuster(client *http.Client, apiKey, baseURL string, timeout time.Duration) *ClaimBuster {
	return &ClaimBuster{client: client, apiKey: apiKey, baseURL: baseURL, timeout: timeout}
}

// Score sends the text to ClaimBuster and returns per-sentence scores in the
// order the service produced them. The text is punctuation-normalized first
// so ClaimBuster's own sentence splitter sees clean boundaries.
func (c *ClaimBuster) Score(ctx context.Context, text string) ([]SentenceScore, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"input_text": extractor.ToSentenceReady(text),
	})
	if err != nil {
		return nil, &UpstreamError{Provider: "claimbuster", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &UpstreamError{Provider: "claimbuster", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: "claimbuster", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: "claimbuster", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Provider: "claimbuster",
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	scores, err := decodeScores(body)
	if err != nil {
		// An unrecognized shape is rejected outright rather than
		// field-guessed; the caller gets an empty result.
		slog.Warn("claimbuster response shape not recognized", "error", err)
		return []SentenceScore{}, nil
	}
	return scores, nil
}

// scoreItem tolerates the field spellings ClaimBuster has used across
// versions of its API.
type scoreItem struct {
	Sentence        string   `json:"sentence"`
	Text            string   `json:"text"`
	Score           *float64 `json:"score"`
	Checkworthiness *float64 `json:"checkworthiness"`
	Value           *float64 `json:"value"`
}

func (it scoreItem) toScore() (SentenceScore, bool) {
	s := SentenceScore{Sentence: it.Sentence}
	if s.Sentence == "" {
		s.Sentence = it.Text
	}
	switch {
	case it.Score != nil:
		s.Score = *it.Score
	case it.Checkworthiness != nil:
		s.Score = *it.Checkworthiness
	case it.Value != nil:
		s.Score = *it.Value
	default:
		return SentenceScore{}, false
	}
	return s, s.Sentence != ""
}

// decodeScores accepts the three response shapes ClaimBuster returns: a bare
// list of items, a {"results": [...]} wrapper, or a sentence-to-score map.
func decodeScores(body []byte) ([]SentenceScore, error) {
	var items []scoreItem
	if err := json.Unmarshal(body, &items); err == nil {
		return collectScores(items), nil
	}

	var wrapped struct {
		Results []scoreItem `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Results != nil {
		return collectScores(wrapped.Results), nil
	}

	var bySentence map[string]float64
	if err := json.Unmarshal(body, &bySentence); err == nil {
		scores := make([]SentenceScore, 0, len(bySentence))
		for sentence, score := range bySentence {
			scores = append(scores, SentenceScore{Sentence: sentence, Score: score})
		}
		// Map iteration order is random; sort so identical responses
		// always produce the same result.
		sort.Slice(scores, func(i, j int) bool { return scores[i].Sentence < scores[j].Sentence })
		return scores, nil
	}

	return nil, fmt.Errorf("unrecognized response shape: %s", truncate(string(body), 200))
}

func collectScores(items []scoreItem) []SentenceScore {
	scores := make([]SentenceScore, 0, len(items))
	for _, it := range items {
		if s, ok := it.toScore(); ok {
			scores = append(scores, s)
		}
	}
	return scores
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
