package adstxt

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/viplavganguli77/vdo-validator/internal/util"
)

// Fetcher is the live-fetch contract: the current declaration lines
// for a domain, or an error that the collector degrades to an empty
// set.
type Fetcher interface {
	Fetch(ctx context.Context, domain string) ([]string, error)
}

// FetchAll fetches ads.txt for every domain with a bounded worker
// pool and returns a complete domain -> lines map. Fetch failures
// degrade to an empty line set and are never propagated; every input
// domain has an entry in the result.
func FetchAll(ctx context.Context, fetcher Fetcher, domains []string, concurrency int) map[string][]string {
	if concurrency <= 0 {
		concurrency = 8
	}

	results := make(map[string][]string, len(domains))
	var mu sync.Mutex

	work := make(chan string)
	var wg sync.WaitGroup

	bar := newFetchBar(len(domains))

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for domain := range work {
				lines, err := fetcher.Fetch(ctx, domain)
				if err != nil {
					// Soft failure: zero live lines for this domain
					util.DebugLog("Fetch failed for %s: %v", domain, err)
					lines = nil
				}

				mu.Lock()
				results[domain] = lines
				mu.Unlock()

				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}

	for _, domain := range domains {
		select {
		case work <- domain:
		case <-ctx.Done():
			// Drain remaining domains as empty so the map stays complete
			mu.Lock()
			for _, d := range domains {
				if _, ok := results[d]; !ok {
					results[d] = nil
				}
			}
			mu.Unlock()
			close(work)
			wg.Wait()
			if bar != nil {
				bar.Finish()
			}
			return results
		}
	}
	close(work)
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}

	return results
}

// newFetchBar returns a progress bar when stdout is a terminal and
// logging is not quiet, nil otherwise.
func newFetchBar(total int) *progressbar.ProgressBar {
	if !util.IsTerminal(os.Stdout.Fd()) || util.IsQuiet() {
		return nil
	}
	width := 40
	if util.TerminalWidth() < 100 {
		width = 20
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Fetching ads.txt"),
		progressbar.OptionSetWidth(width),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("domains"),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
