// Package stats implements the pure aggregation and ranking transformations
// over raw donation rows. Nothing here touches a rendering surface or the
// network; the load-cycle controller feeds rows in and carries results out.
package stats

import (
	"fmt"

	"donasi/internal/core"
)

// Issue records why a single field of a single row was skipped during
// aggregation. Issues are diagnostics only; they never abort the batch and
// are kept separate from the returned snapshot.
type Issue struct {
	Row    int
	Field  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d: %s: %s", i.Row, i.Field, i.Reason)
}

// Aggregate folds a row sequence into one snapshot. Each row is processed
// independently: a malformed field degrades to a safe default and is noted
// as an Issue while the rest of the row still contributes.
func Aggregate(rows []core.RawRow) (core.Snapshot, []Issue) {
	snap := core.Snapshot{Categories: make(map[string]core.CategoryBucket)}
	donors := make(map[string]struct{})
	var issues []Issue

	for i, row := range rows {
		if len(row) == 0 {
			issues = append(issues, Issue{Row: i, Field: "row", Reason: "empty"})
			continue
		}

		amount := core.ParseAmount(row.AmountText())
		if amount > 0 {
			snap.TotalAmount += amount
			snap.TransactionCount++
		} else if row.AmountText() != "" {
			issues = append(issues, Issue{Row: i, Field: "amount", Reason: "not a positive number"})
		}

		if donor := row.Donor(); core.IsIdentifiableDonor(donor) {
			donors[donor] = struct{}{}
		}

		category := row.Category()
		bucket, seen := snap.Categories[category]
		if !seen {
			snap.CategoryOrder = append(snap.CategoryOrder, category)
		}
		if amount > 0 {
			bucket.Count++
			bucket.Total += amount
		}
		snap.Categories[category] = bucket

		if t, ok := core.ParseDate(row.DateText()); ok {
			if snap.LatestTransactionDate.IsZero() || t.After(snap.LatestTransactionDate) {
				snap.LatestTransactionDate = t
			}
		} else if row.DateText() != "" {
			issues = append(issues, Issue{Row: i, Field: "date", Reason: "unparseable"})
		}
	}

	snap.UniqueDonorCount = len(donors)
	snap.UniqueCategoryCount = len(snap.Categories)
	return snap, issues
}
