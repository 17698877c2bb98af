package store

import (
	"database/sql"
	"fmt"

	"github.com/viplavganguli77/vdo-validator/internal/normalize"
)

// InsertMasterLine dedup-inserts one storage-normalized line into
// the master set. Inserting an existing line is an idempotent no-op.
func (s *Store) InsertMasterLine(line string) error {
	ln := normalize.Storage(line)
	if ln == "" {
		return nil
	}

	_, err := s.db.Exec(
		"INSERT INTO master_lines (line) VALUES (?) ON CONFLICT(line) DO NOTHING", ln)
	if err != nil {
		return fmt.Errorf("failed to insert master line: %w", err)
	}
	return nil
}

// ReplaceMasterLines clears the master set and re-inserts the given
// lines, de-duplicated, in the order given.
func (s *Store) ReplaceMasterLines(lines []string) error {
	clean := make([]string, 0, len(lines))
	for _, ln := range lines {
		if n := normalize.Storage(ln); n != "" {
			clean = append(clean, n)
		}
	}
	clean = normalize.Dedupe(clean)

	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM master_lines"); err != nil {
			return fmt.Errorf("failed to clear master lines: %w", err)
		}
		for _, ln := range clean {
			if _, err := tx.Exec(
				"INSERT INTO master_lines (line) VALUES (?) ON CONFLICT(line) DO NOTHING",
				ln); err != nil {
				return fmt.Errorf("failed to insert master line: %w", err)
			}
		}
		return nil
	})
}

// GetMasterLines returns the master set in insertion order with
// exact-text duplicates removed.
func (s *Store) GetMasterLines() ([]string, error) {
	rows, err := s.db.Query("SELECT line FROM master_lines ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query master lines: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var ln string
		if err := rows.Scan(&ln); err != nil {
			return nil, fmt.Errorf("failed to scan master line: %w", err)
		}
		lines = append(lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return normalize.Dedupe(lines), nil
}

// GetMasterFirstLine returns the earliest-inserted master line,
// empty string when the set is empty.
func (s *Store) GetMasterFirstLine() (string, error) {
	var line string
	err := s.db.QueryRow("SELECT line FROM master_lines ORDER BY id ASC LIMIT 1").Scan(&line)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get first master line: %w", err)
	}

	return line, nil
}
