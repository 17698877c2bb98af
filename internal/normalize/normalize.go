// Package normalize canonicalizes ads.txt lines and domain keys.
//
// Two normalization levels exist and are not interchangeable:
// Storage is applied before anything is persisted, Compare is applied
// only when diffing stored lines against live ones.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Storage normalizes a line or domain key for persistence:
// Unicode NFC, trim leading/trailing whitespace, lowercase.
// Internal spacing is preserved because ads.txt fields are
// comma-delimited and the stored form should stay readable.
func Storage(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// Compare normalizes a line for equality checks: every whitespace
// character is removed and the result is lowercased. This tolerates
// publisher formatting noise like extra spaces around commas.
func Compare(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SplitLines splits a multi-line cell or text blob into individual
// storage-normalized lines, dropping any that normalize to empty.
func SplitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if ln := Storage(raw); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// SplitDomains splits a pasted domain blob on commas and newlines,
// storage-normalizing each entry and dropping empties.
func SplitDomains(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var domains []string
	for _, f := range fields {
		if d := Storage(f); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

// Dedupe removes exact-text duplicates from a line list while
// preserving first-seen order.
func Dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if seen[ln] {
			continue
		}
		seen[ln] = true
		out = append(out, ln)
	}
	return out
}
