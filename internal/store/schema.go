package store

// Schema v1 - Initial database schema
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Publisher domains under coverage tracking
CREATE TABLE IF NOT EXISTS domains (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  domain TEXT UNIQUE NOT NULL,
  account_manager TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_domains_domain ON domains(domain);

-- Demand partners, one row per source workbook sheet
CREATE TABLE IF NOT EXISTS partners (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT UNIQUE COLLATE NOCASE NOT NULL,
  integration_type TEXT NOT NULL DEFAULT ''
);

-- Expected ads.txt lines per partner. Duplicate text may occur; the
-- autoincrement id carries insertion order, which makes the earliest
-- row a partner's "first line" canary.
CREATE TABLE IF NOT EXISTS partner_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  partner_id INTEGER NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
  line TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_partner_lines_partner_id ON partner_lines(partner_id);

-- Canonical master line set, a superset of all partner lines
CREATE TABLE IF NOT EXISTS master_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  line TEXT UNIQUE NOT NULL
);
`
