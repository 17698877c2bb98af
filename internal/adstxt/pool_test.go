package adstxt

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

// fakeFetcher serves canned lines and records concurrency
type fakeFetcher struct {
	lines    map[string][]string
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func (f *fakeFetcher) Fetch(ctx context.Context, domain string) ([]string, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxSeen.Load()
		if cur <= peak || f.maxSeen.CompareAndSwap(peak, cur) {
			break
		}
	}

	lines, ok := f.lines[domain]
	if !ok {
		return nil, errors.New("no ads.txt")
	}
	return lines, nil
}

func TestFetchAllCollectsEveryDomain(t *testing.T) {
	fetcher := &fakeFetcher{lines: map[string][]string{
		"a.com": {"g.com, 1, direct"},
		"b.com": {"g.com, 1, direct", "h.com, 2, reseller"},
	}}

	domains := []string{"a.com", "b.com", "dead.com"}
	results := FetchAll(context.Background(), fetcher, domains, 2)

	if len(results) != 3 {
		t.Fatalf("expected an entry per domain, got %d", len(results))
	}
	if len(results["a.com"]) != 1 || len(results["b.com"]) != 2 {
		t.Errorf("unexpected line counts: %v", results)
	}
	// Failures degrade to zero live lines, never an error
	if len(results["dead.com"]) != 0 {
		t.Errorf("expected empty lines for failing domain, got %v", results["dead.com"])
	}
}

func TestFetchAllBoundsConcurrency(t *testing.T) {
	lines := make(map[string][]string)
	var domains []string
	for _, d := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		domain := d + ".com"
		lines[domain] = []string{"x.com, 1, direct"}
		domains = append(domains, domain)
	}

	fetcher := &fakeFetcher{lines: lines}
	FetchAll(context.Background(), fetcher, domains, 3)

	if peak := fetcher.maxSeen.Load(); peak > 3 {
		t.Errorf("worker pool exceeded bound: saw %d concurrent fetches", peak)
	}
}

func TestFetchAllZeroConcurrencyDefaults(t *testing.T) {
	fetcher := &fakeFetcher{lines: map[string][]string{"a.com": {"x"}}}
	results := FetchAll(context.Background(), fetcher, []string{"a.com"}, 0)
	if len(results["a.com"]) != 1 {
		t.Errorf("expected fetch to run with default concurrency, got %v", results)
	}
}
