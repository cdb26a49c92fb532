package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const responsesEndpoint = "https://api.openai.com/v1/responses"

// LLMClaim is one fact-checked claim extracted by the model.
type LLMClaim struct {
	Rank           int      `json:"rank"`
	Sentence       string   `json:"sentence"`
	Verdict        string   `json:"verdict"`
	Confidence     int      `json:"confidence"`
	ConfidenceBand string   `json:"confidence_band"`
	Reasoning      string   `json:"reasoning"`
	Sources        []string `json:"sources"`
}

// LLMReliability is the model's overall reliability assessment of the text.
type LLMReliability struct {
	Score   int    `json:"score"`
	Band    string `json:"band"`
	Summary string `json:"summary"`
}

// LLMVerdict is the parsed outcome of an LLM verification pass. When the
// model's output could not be parsed as JSON, Claims is empty and Raw
// carries the text as produced.
type LLMVerdict struct {
	Claims             []LLMClaim      `json:"claims"`
	OverallReliability *LLMReliability `json:"overall_reliability"`
	Raw                string          `json:"raw,omitempty"`
}

// LLMVerifier fact-checks text with a search-capable language model via the
// OpenAI responses API.
type LLMVerifier struct {
	client  *http.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewLLMVerifier creates an LLM verifier.
func NewLLMVerifier(client *http.Client, apiKey, model string, timeout time.Duration) *LLMVerifier {
	return &LLMVerifier{client: client, apiKey: apiKey, model: model, timeout: timeout}
}

type responsesRequest struct {
	Model string              `json:"model"`
	Tools []map[string]string `json:"tools"`
	Input string              `json:"input"`
}

// responsesPayload covers the parts of the responses API reply we read. The
// convenience output_text field is present in SDK objects but not on the
// wire, so the text is collected from the output items.
type responsesPayload struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Verify asks the model to extract the topN most checkable claims from the
// text and fact-check each with at least minSources cited sources.
func (v *LLMVerifier) Verify(ctx context.Context, text string, topN, minSources int) (*LLMVerdict, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := json.Marshal(responsesRequest{
		Model: v.model,
		Tools: []map[string]string{{"type": "web_search_preview"}},
		Input: buildFactCheckPrompt(text, topN, minSources),
	})
	if err != nil {
		return nil, &UpstreamError{Provider: "llm", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, responsesEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &UpstreamError{Provider: "llm", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: "llm", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Provider: "llm", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Provider: "llm",
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	var parsed responsesPayload
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{Provider: "llm", Err: fmt.Errorf("malformed response: %w", err)}
	}
	if parsed.Error != nil {
		return nil, &UpstreamError{Provider: "llm", Err: fmt.Errorf("api error: %s", parsed.Error.Message)}
	}

	return parseVerdict(outputText(parsed)), nil
}

func outputText(resp responsesPayload) string {
	var sb strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" {
				sb.WriteString(content.Text)
			}
		}
	}
	return sb.String()
}

// parseVerdict parses the model output as JSON, salvaging the outermost
// object if the model wrapped it in prose or code fences. An unparseable
// output degrades to an empty verdict carrying the raw text.
func parseVerdict(output string) *LLMVerdict {
	verdict := &LLMVerdict{Claims: []LLMClaim{}}
	if tryUnmarshalVerdict(output, verdict) {
		return verdict
	}
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start != -1 && end > start && tryUnmarshalVerdict(output[start:end+1], verdict) {
		return verdict
	}
	return &LLMVerdict{Claims: []LLMClaim{}, Raw: output}
}

func tryUnmarshalVerdict(s string, verdict *LLMVerdict) bool {
	var parsed LLMVerdict
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return false
	}
	*verdict = parsed
	if verdict.Claims == nil {
		verdict.Claims = []LLMClaim{}
	}
	return true
}
