// Package reconcile diffs stored expected ads.txt lines against the
// live lines fetched from publisher domains.
package reconcile

import (
	"sort"
	"strings"

	"github.com/viplavganguli77/vdo-validator/internal/normalize"
	"github.com/viplavganguli77/vdo-validator/internal/store"
)

const (
	// AllSentinel in a partner selection means "every partner"
	AllSentinel = "(All)"

	// MasterProvider labels rows produced from the master fallback
	MasterProvider = "MASTER (All)"

	// MasterIntegration is the integration-type sentinel for master rows
	MasterIntegration = "MASTER"
)

// Signal is the first-line canary result for one row
type Signal int

const (
	SignalNA Signal = iota
	SignalPresent
	SignalMissing
)

func (s Signal) String() string {
	switch s {
	case SignalPresent:
		return "OK"
	case SignalMissing:
		return "MISSING"
	default:
		return "N/A"
	}
}

// Row is the reconciliation result for one (domain, provider) pair.
// Present and Missing carry the original stored text, which the
// aggregator unions per domain; counts derive from their lengths.
type Row struct {
	Domain          string
	AccountManager  string
	Provider        string
	IntegrationType string
	Present         []string
	Missing         []string
	FirstLine       Signal
}

// Selection chooses the providers to reconcile against. An empty
// partner list, or one consisting solely of the all-sentinel,
// expands to every stored partner; IntegrationType optionally
// narrows partners by a case-insensitive exact match.
type Selection struct {
	Partners        []string
	IntegrationType string
}

// Engine computes present/missing line sets for domains against
// stored provider catalogs.
type Engine struct {
	store *store.Store
}

// New creates a new reconciliation engine
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// ResolveTargets normalizes and resolves the target domain set
// before fetching. Unknown domains are added to the store with an
// empty account manager as a side effect of being referenced. An
// empty explicit set targets every stored domain; the optional
// manager filter is applied after resolution. The result is sorted.
func (e *Engine) ResolveTargets(domains []string, manager string) ([]string, error) {
	known, err := e.store.GetDomainManagers()
	if err != nil {
		return nil, err
	}

	targets := make(map[string]bool)
	for _, d := range domains {
		key := normalize.Storage(d)
		if key == "" {
			continue
		}
		if _, ok := known[key]; !ok {
			if err := e.store.UpsertDomain(key, ""); err != nil {
				return nil, err
			}
			known[key] = ""
		}
		targets[key] = true
	}

	if len(targets) == 0 {
		for key := range known {
			targets[key] = true
		}
	}

	var resolved []string
	for key := range targets {
		if manager != "" && known[key] != manager {
			continue
		}
		resolved = append(resolved, key)
	}
	sort.Strings(resolved)

	return resolved, nil
}

// provider is one expected-line source: a partner or the master set
type provider struct {
	name            string
	integrationType string
	expected        []string
	firstLine       string
}

// Run reconciles every target domain against the selected providers
// using the pre-fetched live-line map. Rows are sorted by (domain,
// provider). A nil row slice means no provider had expected lines
// for this selection.
func (e *Engine) Run(domains []string, sel Selection, live map[string][]string) ([]Row, error) {
	providers, err := e.selectProviders(sel)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, nil
	}

	managers, err := e.store.GetDomainManagers()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, domain := range domains {
		liveNorm := make(map[string]bool, len(live[domain]))
		for _, ln := range live[domain] {
			liveNorm[normalize.Compare(ln)] = true
		}

		for _, p := range providers {
			rows = append(rows, reconcileOne(domain, managers[domain], p, liveNorm))
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Domain != rows[j].Domain {
			return rows[i].Domain < rows[j].Domain
		}
		return rows[i].Provider < rows[j].Provider
	})

	return rows, nil
}

// reconcileOne partitions a provider's expected lines into present
// and missing for one domain. Every expected line lands in exactly
// one of the two sets.
func reconcileOne(domain, manager string, p provider, liveNorm map[string]bool) Row {
	row := Row{
		Domain:          domain,
		AccountManager:  manager,
		Provider:        p.name,
		IntegrationType: p.integrationType,
	}

	for _, ln := range p.expected {
		if liveNorm[normalize.Compare(ln)] {
			row.Present = append(row.Present, ln)
		} else {
			row.Missing = append(row.Missing, ln)
		}
	}

	switch {
	case p.firstLine == "":
		row.FirstLine = SignalNA
	case liveNorm[normalize.Compare(p.firstLine)]:
		row.FirstLine = SignalPresent
	default:
		row.FirstLine = SignalMissing
	}

	return row
}

// selectProviders expands the selection into concrete providers.
// Providers with no expected lines are dropped entirely: they emit
// no rows and contribute nothing to aggregates. When an expanded
// (not explicit) selection is left with no partner providers, the
// master catalog serves as the fallback provider.
func (e *Engine) selectProviders(sel Selection) ([]provider, error) {
	explicit := false
	chosen := make(map[string]bool)
	for _, name := range sel.Partners {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, AllSentinel) || strings.EqualFold(name, "all") {
			continue
		}
		chosen[strings.ToLower(name)] = true
		explicit = true
	}

	partners, err := e.store.GetPartners()
	if err != nil {
		return nil, err
	}

	var providers []provider
	for _, p := range partners {
		if explicit && !chosen[strings.ToLower(p.Name)] {
			continue
		}
		if sel.IntegrationType != "" && !strings.EqualFold(sel.IntegrationType, p.IntegrationType) {
			continue
		}

		expected, err := e.store.GetPartnerLines(p.ID)
		if err != nil {
			return nil, err
		}
		if len(expected) == 0 {
			continue
		}

		first, err := e.store.GetPartnerFirstLine(p.ID)
		if err != nil {
			return nil, err
		}

		providers = append(providers, provider{
			name:            p.Name,
			integrationType: p.IntegrationType,
			expected:        expected,
			firstLine:       first,
		})
	}

	if len(providers) == 0 && !explicit {
		master, err := e.masterProvider()
		if err != nil {
			return nil, err
		}
		if master != nil {
			providers = append(providers, *master)
		}
	}

	return providers, nil
}

// masterProvider builds the master-catalog fallback provider, nil
// when the master set is empty.
func (e *Engine) masterProvider() (*provider, error) {
	expected, err := e.store.GetMasterLines()
	if err != nil {
		return nil, err
	}
	if len(expected) == 0 {
		return nil, nil
	}

	first, err := e.store.GetMasterFirstLine()
	if err != nil {
		return nil, err
	}

	return &provider{
		name:            MasterProvider,
		integrationType: MasterIntegration,
		expected:        expected,
		firstLine:       first,
	}, nil
}
