package reconcile

import "sort"

// DomainSummary is the per-domain union of present and missing line
// text across every row emitted for that domain. Unions are over the
// original stored text: two compare-equivalent spellings stay
// distinct entries.
type DomainSummary struct {
	Domain  string
	Present []string
	Missing []string
}

// Aggregate folds rows into per-domain summaries. Summaries are
// returned sorted by domain; line lists are sorted for deterministic
// output.
func Aggregate(rows []Row) []DomainSummary {
	present := make(map[string]map[string]bool)
	missing := make(map[string]map[string]bool)

	for _, row := range rows {
		if present[row.Domain] == nil {
			present[row.Domain] = make(map[string]bool)
			missing[row.Domain] = make(map[string]bool)
		}
		for _, ln := range row.Present {
			present[row.Domain][ln] = true
		}
		for _, ln := range row.Missing {
			missing[row.Domain][ln] = true
		}
	}

	summaries := make([]DomainSummary, 0, len(present))
	for domain := range present {
		summaries = append(summaries, DomainSummary{
			Domain:  domain,
			Present: sortedKeys(present[domain]),
			Missing: sortedKeys(missing[domain]),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Domain < summaries[j].Domain
	})

	return summaries
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
