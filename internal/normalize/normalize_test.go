package normalize

import (
	"reflect"
	"testing"
)

func TestStorage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Google.com, pub-123, DIRECT", "google.com, pub-123, direct"},
		{"  Example.COM  ", "example.com"},
		{"\tgoogle.com,pub-1,RESELLER\n", "google.com,pub-1,reseller"},
		{"", ""},
		{"   \t  ", ""},
		// Internal spacing must survive storage normalization
		{"a.com,  1,  direct", "a.com,  1,  direct"},
	}

	for _, tt := range tests {
		if got := Storage(tt.input); got != tt.expected {
			t.Errorf("Storage(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"google.com, pub-123, direct", "google.com,pub-123,direct"},
		{"google.com,pub-123,DIRECT", "google.com,pub-123,direct"},
		{" g o o g l e ", "google"},
		{"a.com,\t1,\ndirect", "a.com,1,direct"},
		{"", ""},
		{"  \t\n ", ""},
	}

	for _, tt := range tests {
		if got := Compare(tt.input); got != tt.expected {
			t.Errorf("Compare(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

// Compare must be invariant under whitespace insertion and case changes.
func TestCompareWhitespaceInvariance(t *testing.T) {
	variants := []string{
		"google.com, pub-123, direct",
		"google.com,pub-123,direct",
		"GOOGLE.COM , PUB-123 , DIRECT",
		"  google.com\t,  pub-123 ,\ndirect  ",
	}

	want := Compare(variants[0])
	for _, v := range variants[1:] {
		if got := Compare(v); got != want {
			t.Errorf("Compare(%q) = %q, expected %q", v, got, want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	cell := "Google.com, pub-1, DIRECT\n\n  appnexus.com, 2, RESELLER  \n   "
	got := SplitLines(cell)
	want := []string{"google.com, pub-1, direct", "appnexus.com, 2, reseller"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines = %v, expected %v", got, want)
	}

	if got := SplitLines("  \n \n"); got != nil {
		t.Errorf("expected nil for all-whitespace cell, got %v", got)
	}
}

func TestSplitDomains(t *testing.T) {
	blob := "Example.com, testsite.com\nanother.ORG\r\n , "
	got := SplitDomains(blob)
	want := []string{"example.com", "testsite.com", "another.org"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitDomains = %v, expected %v", got, want)
	}
}

func TestDedupe(t *testing.T) {
	in := []string{"a", "b", "a", "c", "b", "a"}
	got := Dedupe(in)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe = %v, expected %v", got, want)
	}

	// First-seen order preserved even when duplicates interleave
	in2 := []string{"x.com, 1, direct", "y.com, 2, reseller", "x.com, 1, direct"}
	got2 := Dedupe(in2)
	if len(got2) != 2 || got2[0] != "x.com, 1, direct" || got2[1] != "y.com, 2, reseller" {
		t.Errorf("Dedupe order broken: %v", got2)
	}
}
