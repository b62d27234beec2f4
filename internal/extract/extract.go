// Package extract fetches a web page and reduces it to plain text that can be
// handed to caption generation.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/cache"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
)

const (
	UserAgent = "Meme-My-News/1.0 News Content Extractor"
	CacheTTL  = 10 * time.Minute

	maxBodyBytes = 5 << 20
)

var (
	ErrURLRequired = apperr.New(apperr.CodeInvalidInput, "URL is required")

	scriptRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)

	// Applied one after another, so "&amp;lt;" decodes to "<".
	entities = [][2]string{
		{"&nbsp;", " "},
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", `"`},
		{"&#39;", "'"},
	}
)

// Strip removes script and style blocks and every remaining tag, decodes a
// small set of entities and collapses whitespace.
func Strip(html string) string {
	s := scriptRe.ReplaceAllString(html, "")
	s = styleRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Fetcher downloads pages with a fixed User-Agent.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Cache     cache.Cache
}

func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: 15 * time.Second},
		UserAgent: UserAgent,
		Cache:     c,
	}
}

// Fetch returns the cleaned text of the page at url. Every failure after
// input validation is reported as the same client error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", ErrURLRequired
	}
	logger := logging.FromContext(ctx)
	key := cache.Key("extract", []byte(url))

	if data, ok, err := f.Cache.Get(ctx, key); err == nil && ok {
		return string(data), nil
	}

	text, err := f.fetch(ctx, url)
	if err != nil {
		logger.Error("news fetch failed", "url", url, "err", err)
		return "", apperr.Wrap(apperr.CodeInvalidInput, err, "Failed to fetch news text")
	}
	if err := f.Cache.Set(ctx, key, []byte(text), CacheTTL); err != nil {
		logger.Warn("news cache write failed", "err", err)
	}
	return text, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch content: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return Strip(string(body)), nil
}
