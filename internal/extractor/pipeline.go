package extractor

import (
	"context"
	"log/slog"
	"strings"
)

// Pipeline is the extraction entry point: it classifies the input,
// dispatches to the appropriate fetcher, sanitizes, analyzes, and assembles
// the unified result. Fetchers are injected so tests can substitute fakes;
// the pipeline itself holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	articles ArticleSource
	videos   TranscriptSource
}

// NewPipeline creates a Pipeline over the given sources.
func NewPipeline(articles ArticleSource, videos TranscriptSource) *Pipeline {
	return &Pipeline{articles: articles, videos: videos}
}

// Extract turns heterogeneous input (raw text, a web URL, or a video link)
// into a single clean, analyzable result.
//
// Failures of the primary text source abort the call; failures while
// deriving secondary video metadata become warnings on an otherwise
// successful result.
func (p *Pipeline) Extract(ctx context.Context, rawInput string) (*ExtractionResult, error) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return nil, ErrEmptyInput
	}

	classification := Classify(input)
	sourceType := SourcePlainText
	switch {
	case classification.IsURL && classification.IsVideoHost:
		sourceType = SourceYouTube
	case classification.IsURL:
		sourceType = SourceWebURL
	}

	var text string
	switch sourceType {
	case SourceWebURL:
		fetched, err := p.articles.Article(ctx, input)
		if err != nil {
			return nil, err
		}
		text = fetched
	case SourceYouTube:
		videoID, err := ExtractVideoID(input)
		if err != nil {
			return nil, err
		}
		if tr := p.videos.Transcript(ctx, videoID); tr != nil {
			text = tr.Transcript
		}
	default:
		text = input
	}

	text = NormalizeWhitespace(text)
	if text == "" {
		return nil, ErrEmptyContent
	}

	warnings := []string{}
	var metadata *VideoMetadata
	if sourceType == SourceYouTube {
		meta, warning := p.videoMetadata(ctx, input)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		metadata = meta
	}

	return &ExtractionResult{
		SourceType:    sourceType,
		Text:          text,
		JSONReadyText: ToJSONReady(text),
		Analysis:      Analyze(text),
		Warnings:      warnings,
		Metadata:      metadata,
	}, nil
}

// videoMetadata re-derives display metadata for a video source. This is
// best-effort and independent of the main transcript fetch: any failure
// yields a warning string and no metadata rather than failing the request.
// The language code is absent when no track listing is available; that is
// not a warning condition.
func (p *Pipeline) videoMetadata(ctx context.Context, rawURL string) (*VideoMetadata, string) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		slog.Warn("video metadata derivation failed", "url", rawURL, "error", err)
		return nil, "Could not derive YouTube metadata (video_id/language)."
	}

	meta := &VideoMetadata{VideoID: videoID}
	if lang := p.videos.Language(ctx, videoID); lang != "" {
		meta.LanguageCode = lang
	}
	return meta, ""
}
