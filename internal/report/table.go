package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders the summary as a bordered terminal table
// followed by the per-domain present/missing blocks.
func (s *Summary) WriteTable(w io.Writer) error {
	table := tablewriter.NewTable(w)

	headers := make([]any, len(Columns))
	for i, c := range Columns {
		headers[i] = c
	}
	table.Header(headers...)

	for _, row := range s.Rows {
		cells := record(row)
		rowData := make([]any, len(cells))
		for i, c := range cells {
			rowData[i] = c
		}
		if err := table.Append(rowData...); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return s.writeDomainBlocks(w)
}

// writeDomainBlocks prints the combined present/missing line unions
// per domain.
func (s *Summary) writeDomainBlocks(w io.Writer) error {
	for _, d := range s.Domains {
		if _, err := fmt.Fprintf(w, "\nDomain: %s\n", d.Domain); err != nil {
			return err
		}

		fmt.Fprintln(w, "  Present lines:")
		if len(d.Present) == 0 {
			fmt.Fprintln(w, "    (none)")
		}
		for _, ln := range d.Present {
			fmt.Fprintf(w, "    %s\n", ln)
		}

		fmt.Fprintln(w, "  Missing lines:")
		if len(d.Missing) == 0 {
			fmt.Fprintln(w, "    (none)")
		}
		for _, ln := range d.Missing {
			fmt.Fprintf(w, "    %s\n", ln)
		}
	}
	return nil
}
