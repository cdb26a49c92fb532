package provider

import (
	"testing"

	factchecktools "google.golang.org/api/factchecktools/v1alpha1"
)

func TestMapClaims(t *testing.T) {
	claims := []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1Claim{
		{
			Text:      "The ozone layer is recovering.",
			ClaimDate: "2024-01-15T00:00:00Z",
			ClaimReview: []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1ClaimReview{
				{
					Publisher:     &factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1Publisher{Name: "Science Checkers"},
					Title:         "Ozone recovery confirmed",
					Url:           "https://factcheck.example.com/ozone",
					TextualRating: "True",
				},
			},
		},
	}

	matches := mapClaims(claims)
	if len(matches) != 1 {
		t.Fatalf("len = %d, want 1", len(matches))
	}
	m := matches[0]
	if m.Claim != "The ozone layer is recovering." {
		t.Errorf("Claim = %q", m.Claim)
	}
	if m.ClaimDate != "2024-01-15T00:00:00Z" {
		t.Errorf("ClaimDate = %q", m.ClaimDate)
	}
	if len(m.Reviews) != 1 {
		t.Fatalf("Reviews len = %d, want 1", len(m.Reviews))
	}
	r := m.Reviews[0]
	if r.Publisher != "Science Checkers" || r.Title != "Ozone recovery confirmed" || r.Rating != "True" {
		t.Errorf("Review = %+v", r)
	}
}

func TestMapClaimsDefaults(t *testing.T) {
	claims := []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1Claim{
		{
			Text: "Some claim.",
			ClaimReview: []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1ClaimReview{
				{Url: "https://factcheck.example.com/x"},
			},
		},
	}

	matches := mapClaims(claims)
	if len(matches) != 1 {
		t.Fatalf("len = %d, want 1", len(matches))
	}
	r := matches[0].Reviews[0]
	if r.Publisher != "Unknown publisher" {
		t.Errorf("Publisher = %q, want default", r.Publisher)
	}
	if r.Title != "No title" {
		t.Errorf("Title = %q, want default", r.Title)
	}
	if r.Rating != "No rating" {
		t.Errorf("Rating = %q, want default", r.Rating)
	}
}

func TestMapClaimsFiltersUseless(t *testing.T) {
	claims := []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1Claim{
		nil,
		{Text: ""},
		{Text: "No reviews at all."},
		{Text: "Nil review entry.", ClaimReview: []*factchecktools.GoogleFactcheckingFactchecktoolsV1alpha1ClaimReview{nil}},
	}

	if matches := mapClaims(claims); len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}
