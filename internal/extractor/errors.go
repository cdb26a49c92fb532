package extractor

import (
	"errors"
	"fmt"
)

// Failures the caller can correct.
var (
	// ErrEmptyInput means the caller supplied nothing usable.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyContent means the pipeline completed but produced no text
	// (page fetched but extraction yielded nothing, or transcript unavailable).
	ErrEmptyContent = errors.New("no textual content found")

	// ErrInvalidVideoURL means a URL was present but no video identifier
	// pattern was recognized in it.
	ErrInvalidVideoURL = errors.New("could not parse video id from URL")
)

// FetchError means an external source could not be reached at all
// (blocked, unreachable, non-2xx, timeout).
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not download %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError means the source was reached but yielded no usable body
// (paywalled, JS-only, or malformed markup).
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %s", e.URL, e.Reason)
}
