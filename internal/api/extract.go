package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/moshiurmishuk/claim-polygraph-server/internal/extractor"
)

// ExtractRequest is the body for the text extraction endpoint.
type ExtractRequest struct {
	Input string `json:"input"`
}

// HandleExtract runs the acquisition and normalization pipeline on the input
// and returns the cleaned text with its analysis.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.Pipeline.Extract(r.Context(), req.Input)
	if err != nil {
		h.respondExtractError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondExtractError maps pipeline failures onto HTTP statuses: bad input
// is the client's fault, fetch and extraction failures are an upstream
// problem, anything else is ours.
func (h *Handler) respondExtractError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, extractor.ErrEmptyInput),
		errors.Is(err, extractor.ErrEmptyContent),
		errors.Is(err, extractor.ErrInvalidVideoURL):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		var fetchErr *extractor.FetchError
		var extractionErr *extractor.ExtractionError
		if errors.As(err, &fetchErr) || errors.As(err, &extractionErr) {
			respondError(w, http.StatusBadGateway, err.Error())
			return
		}
		slog.Error("Extraction failed", "error", err)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Extraction failed: %v", err))
	}
}
