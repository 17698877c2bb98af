package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the summary row table as CSV
func (s *Summary) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range s.Rows {
		if err := writer.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
