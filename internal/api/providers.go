package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/provider"
)

// ClaimBusterRequest is the body for the checkworthiness scoring endpoint.
type ClaimBusterRequest struct {
	InputText string `json:"input_text"`
}

// ClaimBusterResponse carries per-sentence checkworthiness scores.
type ClaimBusterResponse struct {
	Provider string                   `json:"provider"`
	Results  []provider.SentenceScore `json:"results"`
}

// HandleClaimBusterScore scores the text's sentences for checkworthiness.
func (h *Handler) HandleClaimBusterScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req ClaimBusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(req.InputText) == "" {
		respondError(w, http.StatusBadRequest, "input_text is required")
		return
	}

	scores, err := h.ClaimBuster.Score(r.Context(), req.InputText)
	if err != nil {
		h.respondProviderError(w, err)
		return
	}
	if scores == nil {
		scores = []provider.SentenceScore{}
	}

	respondJSON(w, http.StatusOK, ClaimBusterResponse{Provider: "claimbuster", Results: scores})
}

// FactCheckRequest is the body for the fact-check search endpoint.
type FactCheckRequest struct {
	Sentences []string `json:"sentences"`
	Language  string   `json:"language"`
	PageSize  int      `json:"page_size"`
}

// FactCheckSentenceResult pairs one input sentence with its index matches.
type FactCheckSentenceResult struct {
	Sentence string                    `json:"sentence"`
	Matches  []provider.FactCheckMatch `json:"matches"`
}

// FactCheckResponse carries the per-sentence results in input order.
type FactCheckResponse struct {
	Provider string                    `json:"provider"`
	Results  []FactCheckSentenceResult `json:"results"`
}

// HandleFactCheckVerify searches the fact-check index for every sentence,
// fanning the lookups out concurrently. One failed lookup fails the whole
// request so the caller never mistakes a partial result for a complete one.
func (h *Handler) HandleFactCheckVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req FactCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(req.Sentences) == 0 {
		respondError(w, http.StatusBadRequest, "sentences is required")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}
	if req.PageSize == 0 {
		req.PageSize = 3
	}
	if req.PageSize < 1 || req.PageSize > 10 {
		respondError(w, http.StatusBadRequest, "page_size must be between 1 and 10")
		return
	}

	results := make([]FactCheckSentenceResult, len(req.Sentences))
	var mu sync.Mutex
	var firstErr error

	h.Workers.Run(r.Context(), len(req.Sentences), func(ctx context.Context, i int) {
		sentence := req.Sentences[i]
		matches, err := h.FactChecker.Search(ctx, sentence, req.Language, req.PageSize)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return
		}
		if matches == nil {
			matches = []provider.FactCheckMatch{}
		}
		results[i] = FactCheckSentenceResult{Sentence: sentence, Matches: matches}
	})

	if firstErr != nil {
		h.respondProviderError(w, firstErr)
		return
	}

	respondJSON(w, http.StatusOK, FactCheckResponse{Provider: "google_factcheck", Results: results})
}

// LLMVerifyRequest is the body for the LLM verification endpoint.
type LLMVerifyRequest struct {
	InputText  string `json:"input_text"`
	TopN       int    `json:"top_n"`
	MinSources int    `json:"min_sources"`
}

// LLMVerifyResponse carries the model's parsed verdict. Raw is set only
// when the model's output could not be parsed.
type LLMVerifyResponse struct {
	Provider           string                   `json:"provider"`
	Claims             []provider.LLMClaim      `json:"claims"`
	OverallReliability *provider.LLMReliability `json:"overall_reliability"`
	Raw                string                   `json:"raw,omitempty"`
}

// HandleLLMVerify fact-checks the text's top claims with a search-capable
// language model.
func (h *Handler) HandleLLMVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req LLMVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(req.InputText) == "" {
		respondError(w, http.StatusBadRequest, "input_text is required")
		return
	}
	if req.TopN == 0 {
		req.TopN = h.Config.LLMTopNClaims
	}
	if req.MinSources == 0 {
		req.MinSources = h.Config.LLMMinSources
	}
	if req.TopN < 1 || req.TopN > 10 {
		respondError(w, http.StatusBadRequest, "top_n must be between 1 and 10")
		return
	}
	if req.MinSources < 1 || req.MinSources > 10 {
		respondError(w, http.StatusBadRequest, "min_sources must be between 1 and 10")
		return
	}

	verdict, err := h.LLM.Verify(r.Context(), req.InputText, req.TopN, req.MinSources)
	if err != nil {
		h.respondProviderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LLMVerifyResponse{
		Provider:           "llm_with_search",
		Claims:             verdict.Claims,
		OverallReliability: verdict.OverallReliability,
		Raw:                verdict.Raw,
	})
}

// respondProviderError maps upstream provider failures to 502; anything
// else is a server error.
func (h *Handler) respondProviderError(w http.ResponseWriter, err error) {
	var upstreamErr *provider.UpstreamError
	if errors.As(err, &upstreamErr) {
		respondError(w, http.StatusBadGateway, upstreamErr.Error())
		return
	}
	slog.Error("Provider call failed", "error", err)
	respondError(w, http.StatusInternalServerError, "Verification failed")
}
