package store

import (
	"fmt"
	"strings"

	"github.com/viplavganguli77/vdo-validator/internal/normalize"
)

// UpsertDomain inserts the domain if absent, then unconditionally
// sets its account manager: last write wins on the attribute. A key
// that normalizes to empty is a silent no-op.
func (s *Store) UpsertDomain(key, accountManager string) error {
	d := normalize.Storage(key)
	if d == "" {
		return nil
	}
	// Account managers keep their display case, only trimmed
	am := strings.TrimSpace(accountManager)

	_, err := s.db.Exec(`
		INSERT INTO domains (domain, account_manager) VALUES (?, ?)
		ON CONFLICT(domain) DO UPDATE SET account_manager = excluded.account_manager
	`, d, am)
	if err != nil {
		return fmt.Errorf("failed to upsert domain: %w", err)
	}

	return nil
}

// InsertDomain inserts the domain if absent and leaves an existing
// row untouched. The ingest path uses this so a duplicate sheet row
// cannot overwrite an earlier account manager; interactive edits go
// through UpsertDomain instead.
func (s *Store) InsertDomain(key, accountManager string) error {
	d := normalize.Storage(key)
	if d == "" {
		return nil
	}

	_, err := s.db.Exec(`
		INSERT INTO domains (domain, account_manager) VALUES (?, ?)
		ON CONFLICT(domain) DO NOTHING
	`, d, strings.TrimSpace(accountManager))
	if err != nil {
		return fmt.Errorf("failed to insert domain: %w", err)
	}

	return nil
}

// GetDomains returns all domains ordered by key
func (s *Store) GetDomains() ([]*Domain, error) {
	rows, err := s.db.Query(`
		SELECT id, domain, account_manager FROM domains ORDER BY domain
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer rows.Close()

	var domains []*Domain
	for rows.Next() {
		d := &Domain{}
		if err := rows.Scan(&d.ID, &d.Key, &d.AccountManager); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}

	return domains, rows.Err()
}

// GetDomainManagers returns a domain -> account manager map
func (s *Store) GetDomainManagers() (map[string]string, error) {
	domains, err := s.GetDomains()
	if err != nil {
		return nil, err
	}

	managers := make(map[string]string, len(domains))
	for _, d := range domains {
		managers[d.Key] = d.AccountManager
	}
	return managers, nil
}

// CountDomains returns the number of stored domains. The ingestor
// uses this as its has-already-run check.
func (s *Store) CountDomains() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM domains").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count domains: %w", err)
	}
	return count, nil
}
