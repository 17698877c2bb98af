// Package report renders reconciliation results as a terminal table,
// CSV, or an xlsx workbook, plus the per-domain line blocks.
package report

import (
	"strconv"

	"github.com/viplavganguli77/vdo-validator/internal/reconcile"
)

// Columns of the summary row table, in export order
var Columns = []string{
	"Domain",
	"Account Manager",
	"Demand Partner",
	"Integration Type",
	"Present Lines",
	"Missing Lines",
	"First Line",
}

// Summary holds a finished reconciliation run ready for rendering
type Summary struct {
	Rows    []reconcile.Row
	Domains []reconcile.DomainSummary
}

// NewSummary builds a Summary from engine rows
func NewSummary(rows []reconcile.Row) *Summary {
	return &Summary{
		Rows:    rows,
		Domains: reconcile.Aggregate(rows),
	}
}

// record flattens one row into table cells
func record(row reconcile.Row) []string {
	return []string{
		row.Domain,
		row.AccountManager,
		row.Provider,
		row.IntegrationType,
		strconv.Itoa(len(row.Present)),
		strconv.Itoa(len(row.Missing)),
		row.FirstLine.String(),
	}
}
