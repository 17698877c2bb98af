package adstxt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testClient returns a client pointed at plain http so httptest
// servers can stand in for publisher domains.
func testClient(timeout time.Duration) *Client {
	c := NewClient(timeout)
	c.scheme = "http"
	return c
}

func TestFetchParsesLines(t *testing.T) {
	body := strings.Join([]string{
		"# contact: ops@example.com",
		"",
		"Google.com, pub-123, DIRECT",
		"  appnexus.com, 456, RESELLER  ",
		"# trailing comment",
	}, "\n")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ads.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := testClient(0)
	domain := strings.TrimPrefix(server.URL, "http://")

	lines, err := client.Fetch(context.Background(), domain)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	want := []string{"google.com, pub-123, direct", "appnexus.com, 456, reseller"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want[i])
		}
	}
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(0)
	domain := strings.TrimPrefix(server.URL, "http://")

	if _, err := client.Fetch(context.Background(), domain); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("late.com, 1, direct"))
	}))
	defer server.Close()

	client := testClient(20 * time.Millisecond)
	domain := strings.TrimPrefix(server.URL, "http://")

	if _, err := client.Fetch(context.Background(), domain); err == nil {
		t.Error("expected timeout error")
	}
}

func TestFetchUnreachableDomain(t *testing.T) {
	client := testClient(500 * time.Millisecond)
	if _, err := client.Fetch(context.Background(), "127.0.0.1:1"); err == nil {
		t.Error("expected connection error")
	}
}
