package extractor

import (
	"net/url"
	"strings"
)

// videoHosts is the exact allow-list of video-hosting domains. Subdomains
// outside this set (music.youtube.com, gaming.youtube.com, ...) are treated
// as ordinary web URLs to avoid false-positive transcript fetches.
var videoHosts = map[string]struct{}{
	"youtube.com":     {},
	"www.youtube.com": {},
	"m.youtube.com":   {},
	"youtu.be":        {},
}

// Classification is the result of inspecting an input string.
type Classification struct {
	IsURL       bool
	IsVideoHost bool
}

// Classify reports whether the trimmed input parses as an http(s) URL with a
// host, and if so, whether that host is a known video-hosting domain.
// Malformed input never fails; it is simply not a URL.
func Classify(input string) Classification {
	parsed, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return Classification{}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Classification{}
	}
	if parsed.Host == "" {
		return Classification{}
	}

	_, video := videoHosts[strings.ToLower(parsed.Hostname())]
	return Classification{IsURL: true, IsVideoHost: video}
}
