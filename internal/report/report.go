// Package report summarises the action ledger.
package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/crucial707/inventory-tracker/internal/models"
)

// Generate builds a report from ledger entries (in ledger order) and the
// number of known users. Totals are sorted by descending count; ties keep the
// order in which the action first appeared.
func Generate(entries []models.LedgerEntry, totalUsers int) models.Report {
	var totals []models.ActionTotal
	index := make(map[int]int)
	for _, e := range entries {
		i, ok := index[e.Action]
		if !ok {
			i = len(totals)
			index[e.Action] = i
			totals = append(totals, models.ActionTotal{Action: e.Action})
		}
		totals[i].Count += e.Count
	}
	slices.SortStableFunc(totals, func(a, b models.ActionTotal) int {
		return b.Count - a.Count
	})

	return models.Report{
		Entries:    slices.Clone(entries),
		Totals:     totals,
		TotalUsers: totalUsers,
	}
}

// Render writes the report as plain text.
func Render(w io.Writer, r models.Report) error {
	if _, err := fmt.Fprintln(w, "User Activity Report:"); err != nil {
		return err
	}
	for _, e := range r.Entries {
		if _, err := fmt.Fprintf(w, "%s & %d -> %d\n", e.Email, e.Action, e.Count); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nMost Frequent Actions:"); err != nil {
		return err
	}
	for _, t := range r.Totals {
		if _, err := fmt.Fprintf(w, "Action: %d, Count: %d\n", t.Action, t.Count); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nTotal Number of Users: %d\n", r.TotalUsers)
	return err
}
