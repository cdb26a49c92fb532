package provider

import (
	"context"
	"fmt"
	"time"

	factchecktools "google.golang.org/api/factchecktools/v1alpha1"
	"google.golang.org/api/option"
)

// FactCheckReview is a single published review of a claim.
type FactCheckReview struct {
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Rating    string `json:"rating"`
}

// FactCheckMatch is a claim found in the Google Fact Check Tools index,
// together with its reviews.
type FactCheckMatch struct {
	Claim     string            `json:"claim"`
	ClaimDate string            `json:"claim_date,omitempty"`
	Reviews   []FactCheckReview `json:"reviews"`
}

// FactChecker searches the Google Fact Check Tools claim index.
type FactChecker struct {
	service *factchecktools.Service
	timeout time.Duration
}

// NewFactChecker creates a FactChecker backed by the Fact Check Tools API.
func NewFactChecker(ctx context.Context, apiKey string, timeout time.Duration) (*FactChecker, error) {
	service, err := factchecktools.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create factcheck service: %w", err)
	}
	return &FactChecker{service: service, timeout: timeout}, nil
}

// Search looks up published fact checks for one sentence. An empty result
// means no fact checker has reviewed a matching claim, not that the claim
// is true.
func (f *FactChecker) Search(ctx context.Context, sentence, languageCode string, pageSize int) ([]FactCheckMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.service.Claims.Search().
		Query(sentence).
		LanguageCode(languageCode).
		PageSize(int64(pageSize)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &UpstreamError{Provider: "factcheck", Err: err}
	}
	return mapClaims(resp.Claims), nil
}

func mapClaims(claims []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1Claim) []FactCheckMatch {
	matches := make([]FactCheckMatch, 0, len(claims))
	for _, claim := range claims {
		if claim == nil || claim.Text == "" {
			continue
		}
		reviews := make([]FactCheckReview, 0, len(claim.ClaimReview))
		for _, review := range claim.ClaimReview {
			if review == nil {
				continue
			}
			r := FactCheckReview{
				Publisher: "Unknown publisher",
				Title:     "No title",
				URL:       review.Url,
				Rating:    "No rating",
			}
			if review.Publisher != nil && review.Publisher.Name != "" {
				r.Publisher = review.Publisher.Name
			}
			if review.Title != "" {
				r.Title = review.Title
			}
			if review.TextualRating != "" {
				r.Rating = review.TextualRating
			}
			reviews = append(reviews, r)
		}
		if len(reviews) == 0 {
			continue
		}
		matches = append(matches, FactCheckMatch{
			Claim:     claim.Text,
			ClaimDate: claim.ClaimDate,
			Reviews:   reviews,
		})
	}
	return matches
}
