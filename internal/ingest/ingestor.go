// Package ingest performs the one-time import of the authoritative
// coverage workbook into the SQLite catalog.
//
// Workbook layout, fixed by convention rather than header names:
//
//	sheet 0 (master):  col A domain, col D account manager,
//	                   col G master ads.txt lines (multi-line cells)
//	last sheet:        account manager roster, ignored
//	sheets in between: one demand partner per sheet, named after the
//	                   sheet; col E integration type, col G lines
package ingest

import (
	"fmt"
	"strings"

	"github.com/viplavganguli77/vdo-validator/internal/normalize"
	"github.com/viplavganguli77/vdo-validator/internal/store"
	"github.com/viplavganguli77/vdo-validator/internal/util"
	"github.com/xuri/excelize/v2"
)

// Column positions in the workbook (zero-based)
const (
	colDomain         = 0 // master sheet, column A
	colAccountManager = 3 // master sheet, column D
	colIntegration    = 4 // partner sheets, column E
	colLines          = 6 // both, column G
)

// minColumns is the narrowest sheet the importer accepts. A master
// sheet below this aborts the import; a partner sheet below it is
// skipped on its own.
const minColumns = 7

// Ingestor imports the coverage workbook into the store
type Ingestor struct {
	store *store.Store
}

// New creates a new Ingestor
func New(s *store.Store) *Ingestor {
	return &Ingestor{store: s}
}

// Result summarizes an import run
type Result struct {
	AlreadyImported bool
	Domains         int
	Partners        int
	MasterLines     int
	SkippedSheets   []string
}

// Run imports the workbook at the given path. It is a no-op when the
// store already holds at least one domain: the import happens at most
// once per store lifetime, and later out-of-band edits to the
// workbook are deliberately never re-synced.
func (i *Ingestor) Run(path string) (*Result, error) {
	count, err := i.store.CountDomains()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		util.InfoLog("Catalog already imported (%d domains), skipping", count)
		return &Result{AlreadyImported: true}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return nil, fmt.Errorf("catalog workbook must have at least a master and one partner sheet, found %d", len(sheets))
	}

	result := &Result{}

	// Sheet 0 is the master sheet; the last sheet is the account
	// manager roster and carries no authorization data.
	if err := i.importMaster(f, sheets[0], result); err != nil {
		return nil, err
	}

	for _, sheet := range sheets[1 : len(sheets)-1] {
		if err := i.importPartner(f, sheet, result); err != nil {
			return nil, err
		}
	}

	util.SuccessLog("Catalog imported: %d domains, %d partners, %d master lines",
		result.Domains, result.Partners, result.MasterLines)
	if len(result.SkippedSheets) > 0 {
		util.WarnLog("Skipped %d malformed partner sheet(s): %s",
			len(result.SkippedSheets), strings.Join(result.SkippedSheets, ", "))
	}

	return result, nil
}

// importMaster loads domains, account managers and the master line
// set. A malformed master sheet is fatal for the whole import.
func (i *Ingestor) importMaster(f *excelize.File, sheet string, result *Result) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read master sheet %q: %w", sheet, err)
	}

	if sheetWidth(rows) < minColumns {
		return fmt.Errorf("master sheet %q does not have enough columns (need at least %d)", sheet, minColumns)
	}

	// First row is the header
	for _, row := range dataRows(rows) {
		domain := cell(row, colDomain)
		if normalize.Storage(domain) != "" {
			if err := i.store.InsertDomain(domain, cell(row, colAccountManager)); err != nil {
				return err
			}
			result.Domains++
		}

		for _, ln := range normalize.SplitLines(cell(row, colLines)) {
			if err := i.store.InsertMasterLine(ln); err != nil {
				return err
			}
			result.MasterLines++
		}
	}

	return nil
}

// importPartner loads one partner sheet. A sheet without the minimum
// columns is skipped on its own and the import carries on.
func (i *Ingestor) importPartner(f *excelize.File, sheet string, result *Result) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read partner sheet %q: %w", sheet, err)
	}

	if sheetWidth(rows) < minColumns {
		util.WarnLog("Partner sheet %q does not have enough columns, skipping", sheet)
		result.SkippedSheets = append(result.SkippedSheets, sheet)
		return nil
	}

	// Integration type: first non-empty cell in its column
	integrationType := ""
	for _, row := range dataRows(rows) {
		if v := strings.TrimSpace(cell(row, colIntegration)); v != "" {
			integrationType = v
			break
		}
	}

	name := strings.TrimSpace(sheet)
	if _, err := i.store.GetOrCreatePartner(name, integrationType); err != nil {
		return err
	}
	result.Partners++

	var lines []string
	for _, row := range dataRows(rows) {
		lines = append(lines, normalize.SplitLines(cell(row, colLines))...)
	}
	if len(lines) > 0 {
		// Appending also dedup-inserts every line into the master set
		if err := i.store.AppendPartnerLines(name, lines); err != nil {
			return err
		}
	}

	return nil
}

// dataRows strips the header row
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// sheetWidth returns the widest row in the sheet. excelize trims
// trailing empty cells per row, so the width check has to look at
// every row rather than just the first.
func sheetWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// cell returns the value at the given column, tolerating short rows
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
