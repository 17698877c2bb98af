package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	domainsSheet = "Domain Lines"
)

// WriteExcel writes the summary to an xlsx workbook: the row table
// on a Summary sheet and the per-domain line unions on a second.
func (s *Summary) WriteExcel(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	if err := setRow(f, summarySheet, 1, Columns); err != nil {
		return err
	}
	for i, row := range s.Rows {
		if err := setRow(f, summarySheet, i+2, record(row)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(domainsSheet); err != nil {
		return fmt.Errorf("failed to create domain sheet: %w", err)
	}
	if err := setRow(f, domainsSheet, 1, []string{"Domain", "Present Lines", "Missing Lines"}); err != nil {
		return err
	}
	for i, d := range s.Domains {
		cells := []string{
			d.Domain,
			strings.Join(d.Present, "\n"),
			strings.Join(d.Missing, "\n"),
		}
		if err := setRow(f, domainsSheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	ref, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to build cell ref: %w", err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, ref, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", rowNum, sheet, err)
	}
	return nil
}
