package extractor

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	watchPageBase = "https://www.youtube.com/watch?v="

	// Browser user agent for the watch page; YouTube serves a reduced page
	// to unknown clients.
	browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxWatchPageBytes = 6 * 1024 * 1024
	maxTrackBytes     = 2 * 1024 * 1024
)

// playerResponseMarker marks the start of the player response JSON embedded
// in the watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

// bracketedSpan matches annotation spans like [Music] or [Applause],
// non-greedy, anywhere in the concatenated transcript.
var bracketedSpan = regexp.MustCompile(`\[.*?\]`)

// ExtractVideoID derives a video identifier from a URL. The short-link form
// is tried first, then the v= query parameter.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidVideoURL, rawURL)
	}

	if strings.EqualFold(parsed.Hostname(), "youtu.be") {
		if id := strings.TrimPrefix(parsed.Path, "/"); id != "" {
			return id, nil
		}
	}
	if id := parsed.Query().Get("v"); id != "" {
		return id, nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidVideoURL, rawURL)
}

// captionTrack is one entry of the watch page's caption track listing.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

// timedText is the caption XML served by a track's base URL.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Lines   []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// errCaptionsDisabled distinguishes "this video has captions turned off"
// from transport failures when listing tracks.
var errCaptionsDisabled = errors.New("captions are disabled for this video")

// TranscriptFetcher retrieves transcript tracks from the video host's public
// watch page: ytInitialPlayerResponse carries the track catalog, each track's
// base URL serves timedtext XML.
type TranscriptFetcher struct {
	client  *http.Client
	timeout time.Duration

	// watchBase is overridable in tests.
	watchBase string
}

// NewTranscriptFetcher creates a TranscriptFetcher using the given client.
// Each network call runs under the given per-call timeout.
func NewTranscriptFetcher(client *http.Client, timeout time.Duration) *TranscriptFetcher {
	return &TranscriptFetcher{
		client:    client,
		timeout:   timeout,
		watchBase: watchPageBase,
	}
}

// Transcript fetches the best available transcript for a video: an English
// track when one exists, otherwise the first track listed. Returns nil when
// no transcript can be produced; the distinct reasons (captions disabled, no
// tracks, listing failed, track fetch failed, unrecognized page) are logged
// but all mean the same thing to the caller.
func (f *TranscriptFetcher) Transcript(ctx context.Context, videoID string) *TranscriptResult {
	tracks, err := f.listTracks(ctx, videoID)
	switch {
	case errors.Is(err, errCaptionsDisabled):
		slog.Warn("transcripts are disabled", "video_id", videoID, "reason", err)
		return nil
	case err != nil:
		slog.Warn("transcript listing failed", "video_id", videoID, "error", err)
		return nil
	case len(tracks) == 0:
		slog.Info("no transcript tracks found", "video_id", videoID)
		return nil
	}

	track := pickTrack(tracks)
	raw, err := f.fetchTrack(ctx, track.BaseURL)
	if err != nil {
		slog.Warn("transcript track fetch failed",
			"video_id", videoID, "language", track.LanguageCode, "error", err)
		return nil
	}

	return &TranscriptResult{
		LanguageCode: track.LanguageCode,
		Transcript:   stripAnnotations(raw),
	}
}

// Language reports the language code the transcript selection would use for
// this video, or "" when no track is available.
func (f *TranscriptFetcher) Language(ctx context.Context, videoID string) string {
	tracks, err := f.listTracks(ctx, videoID)
	if err != nil || len(tracks) == 0 {
		return ""
	}
	return pickTrack(tracks).LanguageCode
}

// listTracks scrapes the watch page and extracts the caption track catalog.
func (f *TranscriptFetcher) listTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.watchBase+url.QueryEscape(videoID), nil)
	if err != nil {
		return nil, fmt.Errorf("watch page request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		slog.Warn("player response not found in watch page", "video_id", videoID)
		return nil, errors.New("unrecognized watch page")
	}
	jsonData := balancedJSON(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		slog.Warn("player response JSON could not be delimited", "video_id", videoID)
		return nil, errors.New("unrecognized watch page")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	if player.Captions == nil {
		if ps := player.PlayabilityStatus; ps != nil && ps.Status != "" {
			return nil, fmt.Errorf("%w (playability %s: %s)", errCaptionsDisabled, ps.Status, ps.Reason)
		}
		return nil, errCaptionsDisabled
	}
	return player.Captions.Renderer.CaptionTracks, nil
}

// fetchTrack downloads a track's timedtext XML and concatenates the caption
// text fields in original order. No separator is inserted between adjacent
// caption lines; upstream caption boundaries do not always align with word
// boundaries, and joining them directly preserves the source behavior.
func (f *TranscriptFetcher) fetchTrack(ctx context.Context, baseURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("track request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch track: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch track: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTrackBytes))
	if err != nil {
		return "", fmt.Errorf("read track: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		sb.WriteString(html.UnescapeString(line.Text))
	}
	return sb.String(), nil
}

// pickTrack prefers an exact "en" track, then any en-* variant, then the
// first track in catalog order.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if t.LanguageCode == "en" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// stripAnnotations removes bracketed non-speech markers like [Music].
func stripAnnotations(s string) string {
	return bracketedSpan.ReplaceAllString(s, "")
}

// balancedJSON returns the prefix of b that forms one complete JSON object,
// or nil when b does not start with one.
func balancedJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return b[:i+1]
				}
			}
		}
	}
	return nil
}
