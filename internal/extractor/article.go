package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const maxArticleBytes = 8 * 1024 * 1024

// ArticleFetcher downloads a web page and extracts its main-body text,
// favoring recall over precision: readability first, then a selector sweep
// over common content containers when readability finds nothing.
type ArticleFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewArticleFetcher creates an ArticleFetcher using the given client.
func NewArticleFetcher(client *http.Client, timeout time.Duration) *ArticleFetcher {
	return &ArticleFetcher{client: client, timeout: timeout}
}

// Article fetches the page and returns only its extracted textual body.
// A download failure (blocked, unreachable, non-2xx, timeout) is a
// *FetchError; a page that downloads but yields no extractable body text is
// an *ExtractionError.
func (f *ArticleFetcher) Article(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: pageURL, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBytes))
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	text := ""
	parsedURL, _ := url.Parse(pageURL)
	if article, err := readability.FromReader(bytes.NewReader(body), parsedURL); err == nil {
		text = strings.TrimSpace(article.TextContent)
	}
	if text == "" {
		text = fallbackText(body)
	}
	if text == "" {
		return "", &ExtractionError{URL: pageURL, Reason: "no extractable body text"}
	}
	return text, nil
}

// contentSelectors are the main-content containers tried first by the
// fallback sweep.
const contentSelectors = "main, article, .content, .post-content, .entry-content, .main-content, div[role='main'], .article-body, .story-body"

// readableElements are the text-bearing elements collected inside a content
// container. Comments and tabular content stay excluded.
const readableElements = "p, h1, h2, h3, h4, h5, h6, blockquote, pre, li"

// fallbackText sweeps common content containers for visible text when
// readability finds no body. It trades precision for recall and may admit
// some non-article fragments.
func fallbackText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	// Remove non-readable chrome entirely before collecting text.
	doc.Find("script, style, noscript, nav, footer, header, aside, table, .sidebar, .nav, .menu, .advertisement, .ads").Remove()

	var sb strings.Builder
	doc.Find(contentSelectors).Each(func(_ int, container *goquery.Selection) {
		container.Find(readableElements).Each(func(_ int, elem *goquery.Selection) {
			text := strings.TrimSpace(elem.Text())
			if len(text) > 10 { // very short text is likely noise
				sb.WriteString(text)
				sb.WriteString("\n\n")
			}
		})
	})

	// If no recognizable content container exists, collect from the body
	// with a higher noise threshold.
	if sb.Len() < 200 {
		doc.Find("body").Find(readableElements).Each(func(_ int, elem *goquery.Selection) {
			if class, ok := elem.Attr("class"); ok {
				lower := strings.ToLower(class)
				if strings.Contains(lower, "nav") || strings.Contains(lower, "menu") ||
					strings.Contains(lower, "footer") || strings.Contains(lower, "header") ||
					strings.Contains(lower, "sidebar") || strings.Contains(lower, "ad") {
					return
				}
			}
			text := strings.TrimSpace(elem.Text())
			if len(text) > 20 {
				sb.WriteString(text)
				sb.WriteString("\n\n")
			}
		})
	}

	return strings.TrimSpace(sb.String())
}
