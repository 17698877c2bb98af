package ingest

import (
	"path/filepath"
	"testing"

	"github.com/viplavganguli77/vdo-validator/internal/store"
	"github.com/xuri/excelize/v2"
)

var masterHeader = []interface{}{
	"Domain", "Status", "Notes", "Account Manager", "Integration", "Contact", "Master ads.txt lines",
}

var partnerHeader = []interface{}{
	"Domain", "Status", "Notes", "Account Manager", "Integration Type", "Contact", "Ads.txt lines",
}

func writeRow(t *testing.T, f *excelize.File, sheet string, rowNum int, values []interface{}) {
	t.Helper()
	cellRef, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		t.Fatalf("failed to build cell ref: %v", err)
	}
	if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
		t.Fatalf("failed to write row: %v", err)
	}
}

// buildWorkbook creates a minimal coverage workbook: master sheet,
// two partner sheets (one malformed), and a trailing roster sheet.
func buildWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Master"); err != nil {
		t.Fatalf("failed to rename master sheet: %v", err)
	}
	writeRow(t, f, "Master", 1, masterHeader)
	writeRow(t, f, "Master", 2, []interface{}{
		"Example.com", "", "", "Alice", "", "", "g.com, 1, DIRECT\nh.com, 2, RESELLER",
	})
	writeRow(t, f, "Master", 3, []interface{}{
		"Other.org", "", "", "Bob", "", "", "g.com, 1, direct",
	})

	if _, err := f.NewSheet("Magnite"); err != nil {
		t.Fatalf("failed to add partner sheet: %v", err)
	}
	writeRow(t, f, "Magnite", 1, partnerHeader)
	writeRow(t, f, "Magnite", 2, []interface{}{
		"", "", "", "", "Prebid", "", "m.com, 10, DIRECT",
	})
	writeRow(t, f, "Magnite", 3, []interface{}{
		"", "", "", "", "", "", "m.com, 11, RESELLER\nm.com, 10, direct",
	})

	// Malformed partner sheet: too few columns, must be skipped
	if _, err := f.NewSheet("Broken"); err != nil {
		t.Fatalf("failed to add broken sheet: %v", err)
	}
	writeRow(t, f, "Broken", 1, []interface{}{"Name", "Lines"})
	writeRow(t, f, "Broken", 2, []interface{}{"x", "y"})

	// Last sheet is the roster and must be ignored entirely
	if _, err := f.NewSheet("AM List"); err != nil {
		t.Fatalf("failed to add roster sheet: %v", err)
	}
	writeRow(t, f, "AM List", 1, []interface{}{"Alice", "Bob"})

	path := filepath.Join(t.TempDir(), "coverage.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test-ingest.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIngestWorkbook(t *testing.T) {
	s := openTestStore(t)
	path := buildWorkbook(t)

	result, err := New(s).Run(path)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if result.AlreadyImported {
		t.Fatal("expected a fresh import on an empty store")
	}

	domains, err := s.GetDomains()
	if err != nil {
		t.Fatalf("failed to read domains: %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(domains))
	}
	if domains[0].Key != "example.com" || domains[0].AccountManager != "Alice" {
		t.Errorf("unexpected domain row: %+v", domains[0])
	}

	partners, err := s.GetPartners()
	if err != nil {
		t.Fatalf("failed to read partners: %v", err)
	}
	if len(partners) != 1 {
		t.Fatalf("expected 1 partner (broken sheet skipped), got %d", len(partners))
	}
	if partners[0].Name != "Magnite" || partners[0].IntegrationType != "Prebid" {
		t.Errorf("unexpected partner: %+v", partners[0])
	}

	lines, err := s.GetPartnerLines(partners[0].ID)
	if err != nil {
		t.Fatalf("failed to read partner lines: %v", err)
	}
	// Two unique lines; the duplicate of the first collapses at read
	want := []string{"m.com, 10, direct", "m.com, 11, reseller"}
	if len(lines) != 2 || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("unexpected partner lines: %v", lines)
	}

	first, err := s.GetPartnerFirstLine(partners[0].ID)
	if err != nil {
		t.Fatalf("failed to read first line: %v", err)
	}
	if first != "m.com, 10, direct" {
		t.Errorf("expected first line 'm.com, 10, direct', got %q", first)
	}

	// Master holds the master column plus every partner line
	master, err := s.GetMasterLines()
	if err != nil {
		t.Fatalf("failed to read master lines: %v", err)
	}
	wantMaster := map[string]bool{
		"g.com, 1, direct":    true,
		"h.com, 2, reseller":  true,
		"m.com, 10, direct":   true,
		"m.com, 11, reseller": true,
	}
	if len(master) != len(wantMaster) {
		t.Fatalf("expected %d master lines, got %d: %v", len(wantMaster), len(master), master)
	}
	for _, ln := range master {
		if !wantMaster[ln] {
			t.Errorf("unexpected master line %q", ln)
		}
	}

	if len(result.SkippedSheets) != 1 || result.SkippedSheets[0] != "Broken" {
		t.Errorf("expected 'Broken' to be the only skipped sheet, got %v", result.SkippedSheets)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	path := buildWorkbook(t)

	if _, err := New(s).Run(path); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}

	before, err := s.GetMasterLines()
	if err != nil {
		t.Fatalf("failed to read master lines: %v", err)
	}

	result, err := New(s).Run(path)
	if err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}
	if !result.AlreadyImported {
		t.Error("expected second run to be a no-op")
	}

	after, err := s.GetMasterLines()
	if err != nil {
		t.Fatalf("failed to read master lines: %v", err)
	}
	if len(before) != len(after) {
		t.Errorf("store changed on second run: %d -> %d master lines", len(before), len(after))
	}
}

func TestIngestFatalErrors(t *testing.T) {
	s := openTestStore(t)

	// Missing workbook aborts the import
	if _, err := New(s).Run(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error for missing workbook")
	}

	// A malformed master sheet is fatal, unlike a partner sheet
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Master"); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	writeRow(t, f, "Master", 1, []interface{}{"Domain", "AM"})
	if _, err := f.NewSheet("Roster"); err != nil {
		t.Fatalf("failed to add sheet: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	f.Close()

	if _, err := New(s).Run(path); err == nil {
		t.Error("expected error for malformed master sheet")
	}
}
