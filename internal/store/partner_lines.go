package store

import (
	"database/sql"
	"fmt"

	"github.com/viplavganguli77/vdo-validator/internal/normalize"
)

// AppendPartnerLines appends storage-normalized lines to a partner.
// Duplicate text is appended as-is: rows are collapsed only at read
// time. Every appended line is also dedup-inserted into the master
// set. A no-op when the partner does not exist or no line survives
// normalization.
func (s *Store) AppendPartnerLines(name string, lines []string) error {
	clean := make([]string, 0, len(lines))
	for _, ln := range lines {
		if n := normalize.Storage(ln); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return nil
	}

	partner, err := s.GetPartnerByName(name)
	if err != nil {
		return err
	}
	if partner == nil {
		return nil
	}

	return s.Transaction(func(tx *sql.Tx) error {
		for _, ln := range clean {
			if _, err := tx.Exec(
				"INSERT INTO partner_lines (partner_id, line) VALUES (?, ?)",
				partner.ID, ln); err != nil {
				return fmt.Errorf("failed to insert partner line: %w", err)
			}
			if _, err := tx.Exec(
				"INSERT INTO master_lines (line) VALUES (?) ON CONFLICT(line) DO NOTHING",
				ln); err != nil {
				return fmt.Errorf("failed to insert master line: %w", err)
			}
		}
		return nil
	})
}

// DeletePartnerLines removes lines matching the exact stored text.
// Every row carrying that text is removed, including duplicates.
func (s *Store) DeletePartnerLines(name string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	partner, err := s.GetPartnerByName(name)
	if err != nil {
		return err
	}
	if partner == nil {
		return nil
	}

	return s.Transaction(func(tx *sql.Tx) error {
		for _, ln := range lines {
			if _, err := tx.Exec(
				"DELETE FROM partner_lines WHERE partner_id = ? AND line = ?",
				partner.ID, ln); err != nil {
				return fmt.Errorf("failed to delete partner line: %w", err)
			}
		}
		return nil
	})
}

// GetPartnerLines returns a partner's lines in insertion order with
// exact-text duplicates removed (first occurrence wins).
func (s *Store) GetPartnerLines(partnerID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT line FROM partner_lines WHERE partner_id = ? ORDER BY id
	`, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query partner lines: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var ln string
		if err := rows.Scan(&ln); err != nil {
			return nil, fmt.Errorf("failed to scan partner line: %w", err)
		}
		lines = append(lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return normalize.Dedupe(lines), nil
}

// GetPartnerFirstLine returns the earliest-inserted line for a
// partner, used as the canary signal. Empty string when the partner
// has no lines.
func (s *Store) GetPartnerFirstLine(partnerID int64) (string, error) {
	var line string
	err := s.db.QueryRow(`
		SELECT line FROM partner_lines WHERE partner_id = ? ORDER BY id ASC LIMIT 1
	`, partnerID).Scan(&line)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get first partner line: %w", err)
	}

	return line, nil
}
