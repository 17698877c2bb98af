// Package adstxt fetches live ads.txt declaration files.
package adstxt

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/viplavganguli77/vdo-validator/internal/normalize"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

const (
	// DefaultTimeout bounds one fetch. Slow publishers past this are
	// treated as having no live lines.
	DefaultTimeout = 7 * time.Second

	// UserAgent identifies the validator. Some publisher CDNs reject
	// requests without a browser-looking agent.
	UserAgent = "Mozilla/5.0 (compatible; vdo-validator/1.0)"
)

// Client fetches a domain's live ads.txt file
type Client struct {
	httpClient *http.Client
	scheme     string
}

// NewClient creates a new ads.txt client with the given per-request
// timeout. A zero timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		scheme:     "https",
	}
}

// Fetch retrieves the ads.txt file for a domain and returns its
// storage-normalized, non-empty, non-comment lines. Any non-200
// status is an error; callers collecting results degrade errors to an
// empty line set.
func (c *Client) Fetch(ctx context.Context, domain string) ([]string, error) {
	urlStr := fmt.Sprintf("%s://%s/ads.txt", c.scheme, domain)

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, urlStr)
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := normalize.Storage(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ads.txt body for %s: %w", domain, err)
	}

	util.DebugLog("Fetched %d ads.txt lines from %s", len(lines), domain)
	return lines, nil
}
