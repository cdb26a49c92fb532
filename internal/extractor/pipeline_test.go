package extractor

import (
	"context"
	"errors"
	"testing"
)

type fakeArticles struct {
	text string
	err  error
}

func (f *fakeArticles) Article(ctx context.Context, pageURL string) (string, error) {
	return f.text, f.err
}

type fakeVideos struct {
	result   *TranscriptResult
	language string
}

func (f *fakeVideos) Transcript(ctx context.Context, videoID string) *TranscriptResult {
	return f.result
}

func (f *fakeVideos) Language(ctx context.Context, videoID string) string {
	return f.language
}

func TestPipelinePlainText(t *testing.T) {
	p := NewPipeline(&fakeArticles{}, &fakeVideos{})

	result, err := p.Extract(context.Background(), "  Hello   world.  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceType != SourcePlainText {
		t.Errorf("SourceType = %q, want %q", result.SourceType, SourcePlainText)
	}
	if result.Text != "Hello world." {
		t.Errorf("Text = %q, want normalized input", result.Text)
	}
	if result.JSONReadyText != "Hello world." {
		t.Errorf("JSONReadyText = %q", result.JSONReadyText)
	}
	if result.Warnings == nil || len(result.Warnings) != 0 {
		t.Errorf("Warnings should be an empty slice, got %v", result.Warnings)
	}
	if result.Metadata != nil {
		t.Errorf("plain text should carry no video metadata, got %+v", result.Metadata)
	}
	if result.Analysis.Words != 2 {
		t.Errorf("Analysis.Words = %d, want 2", result.Analysis.Words)
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	p := NewPipeline(&fakeArticles{}, &fakeVideos{})

	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := p.Extract(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Extract(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestPipelineWebURL(t *testing.T) {
	p := NewPipeline(&fakeArticles{text: "Fetched   article body."}, &fakeVideos{})

	result, err := p.Extract(context.Background(), "https://example.com/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceType != SourceWebURL {
		t.Errorf("SourceType = %q, want %q", result.SourceType, SourceWebURL)
	}
	if result.Text != "Fetched article body." {
		t.Errorf("Text = %q", result.Text)
	}
}

func TestPipelineWebURLFetchFailure(t *testing.T) {
	wantErr := &FetchError{URL: "https://example.com/story", Err: errors.New("status 503")}
	p := NewPipeline(&fakeArticles{err: wantErr}, &fakeVideos{})

	_, err := p.Extract(context.Background(), "https://example.com/story")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
}

func TestPipelineYouTube(t *testing.T) {
	videos := &fakeVideos{
		result:   &TranscriptResult{LanguageCode: "en", Transcript: "spoken   words here"},
		language: "en",
	}
	p := NewPipeline(&fakeArticles{}, videos)

	result, err := p.Extract(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceType != SourceYouTube {
		t.Errorf("SourceType = %q, want %q", result.SourceType, SourceYouTube)
	}
	if result.Text != "spoken words here" {
		t.Errorf("Text = %q", result.Text)
	}
	if result.Metadata == nil {
		t.Fatal("expected video metadata")
	}
	if result.Metadata.VideoID != "abc123" {
		t.Errorf("Metadata.VideoID = %q, want abc123", result.Metadata.VideoID)
	}
	if result.Metadata.LanguageCode != "en" {
		t.Errorf("Metadata.LanguageCode = %q, want en", result.Metadata.LanguageCode)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestPipelineYouTubeNoTranscript(t *testing.T) {
	p := NewPipeline(&fakeArticles{}, &fakeVideos{result: nil})

	_, err := p.Extract(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("error = %v, want ErrEmptyContent", err)
	}
}

func TestPipelineYouTubeInvalidURL(t *testing.T) {
	p := NewPipeline(&fakeArticles{}, &fakeVideos{})

	_, err := p.Extract(context.Background(), "https://www.youtube.com/feed/subscriptions")
	if !errors.Is(err, ErrInvalidVideoURL) {
		t.Errorf("error = %v, want ErrInvalidVideoURL", err)
	}
}

func TestPipelineYouTubeMetadataWithoutLanguage(t *testing.T) {
	videos := &fakeVideos{
		result: &TranscriptResult{LanguageCode: "de", Transcript: "wort"},
	}
	p := NewPipeline(&fakeArticles{}, videos)

	result, err := p.Extract(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A missing language is not a warning: metadata still carries the id.
	if result.Metadata == nil || result.Metadata.VideoID != "abc123" {
		t.Fatalf("Metadata = %+v, want video id without language", result.Metadata)
	}
	if result.Metadata.LanguageCode != "" {
		t.Errorf("LanguageCode = %q, want empty", result.Metadata.LanguageCode)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestVideoMetadataWarning(t *testing.T) {
	p := NewPipeline(&fakeArticles{}, &fakeVideos{})

	meta, warning := p.videoMetadata(context.Background(), "https://www.youtube.com/playlist")
	if meta != nil {
		t.Errorf("expected nil metadata, got %+v", meta)
	}
	if warning == "" {
		t.Error("expected a warning when the video id cannot be derived")
	}
}
