package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxBodyBytes = 2 << 20

// Result is the outcome of a scrape. Failures are soft: Success=false with Error set.
type Result struct {
	Success bool
	Data    *Metadata
	Error   string
}

// Scraper fetches a page and extracts its metadata.
type Scraper interface {
	Fetch(ctx context.Context, pageURL string) Result
}

// Fetcher is the HTTP implementation of Scraper. It identifies itself as a desktop
// browser because many sites serve bots a stripped page or a 403.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) Result {
	body, err := f.download(ctx, pageURL)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	meta := Extract(body, pageURL)
	return Result{Success: true, Data: &meta}
}

func (f *Fetcher) download(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}
