package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// GetOrCreatePartner returns the partner with the given name,
// creating it when absent. An existing partner is left untouched:
// the integrationType argument is ignored on collision. Partner
// names keep their display case; uniqueness is case-insensitive.
func (s *Store) GetOrCreatePartner(name, integrationType string) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("partner name cannot be empty")
	}

	_, err := s.db.Exec(`
		INSERT INTO partners (name, integration_type) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`, name, strings.TrimSpace(integrationType))
	if err != nil {
		return nil, fmt.Errorf("failed to insert partner: %w", err)
	}

	return s.GetPartnerByName(name)
}

// GetPartnerByName retrieves a partner by name, nil when absent
func (s *Store) GetPartnerByName(name string) (*Partner, error) {
	p := &Partner{}
	err := s.db.QueryRow(`
		SELECT id, name, integration_type FROM partners WHERE name = ?
	`, strings.TrimSpace(name)).Scan(&p.ID, &p.Name, &p.IntegrationType)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	return p, nil
}

// GetPartners returns all partners ordered by name
func (s *Store) GetPartners() ([]*Partner, error) {
	rows, err := s.db.Query(`
		SELECT id, name, integration_type FROM partners ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var partners []*Partner
	for rows.Next() {
		p := &Partner{}
		if err := rows.Scan(&p.ID, &p.Name, &p.IntegrationType); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}

	return partners, rows.Err()
}

// DeletePartners deletes the named partners and all lines they own.
// Names with no matching partner are silently skipped.
func (s *Store) DeletePartners(names []string) error {
	if len(names) == 0 {
		return nil
	}

	return s.Transaction(func(tx *sql.Tx) error {
		for _, name := range names {
			var id int64
			err := tx.QueryRow("SELECT id FROM partners WHERE name = ?",
				strings.TrimSpace(name)).Scan(&id)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to look up partner %q: %w", name, err)
			}

			if _, err := tx.Exec("DELETE FROM partner_lines WHERE partner_id = ?", id); err != nil {
				return fmt.Errorf("failed to delete lines for %q: %w", name, err)
			}
			if _, err := tx.Exec("DELETE FROM partners WHERE id = ?", id); err != nil {
				return fmt.Errorf("failed to delete partner %q: %w", name, err)
			}
		}
		return nil
	})
}

// RenamePartner renames a partner in place. Returns false, without
// an error, when the new name is empty or already taken.
func (s *Store) RenamePartner(oldName, newName string) (bool, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false, nil
	}

	existing, err := s.GetPartnerByName(newName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	result, err := s.db.Exec(`
		UPDATE partners SET name = ? WHERE name = ?
	`, newName, strings.TrimSpace(oldName))
	if err != nil {
		return false, fmt.Errorf("failed to rename partner: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rename result: %w", err)
	}

	return affected > 0, nil
}

// UpdateIntegrationType sets the integration type of a partner
func (s *Store) UpdateIntegrationType(name, integrationType string) error {
	_, err := s.db.Exec(`
		UPDATE partners SET integration_type = ? WHERE name = ?
	`, strings.TrimSpace(integrationType), strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to update integration type: %w", err)
	}
	return nil
}
