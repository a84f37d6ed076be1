package stats

import (
	"math"
	"sort"

	"donasi/internal/core"
)

const (
	// TopDonationsLimit caps the top-by-amount view.
	TopDonationsLimit = 3
	// CategoryRankLimit caps the category ranking view.
	CategoryRankLimit = 15
)

// SortByDateDesc returns the rows ordered most recent first. The input is
// never mutated. Rows with unparseable dates sort as if dated at the epoch,
// so they end up last.
func SortByDateDesc(rows []core.RawRow) []core.RawRow {
	out := make([]core.RawRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := core.ParseDate(out[i].DateText())
		tj, _ := core.ParseDate(out[j].DateText())
		return ti.After(tj)
	})
	return out
}

// TopDonations returns at most n rows with the highest parsed amounts,
// restricted to rows with a positive amount and a non-empty donor field.
// Ties keep the original relative order.
func TopDonations(rows []core.RawRow, n int) []core.RawRow {
	valid := make([]core.RawRow, 0, len(rows))
	for _, row := range rows {
		if core.ParseAmount(row.AmountText()) > 0 && row.Donor() != "" {
			valid = append(valid, row)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return core.ParseAmount(valid[i].AmountText()) > core.ParseAmount(valid[j].AmountText())
	})
	if len(valid) > n {
		valid = valid[:n]
	}
	return valid
}

// RankCategories orders the snapshot's category buckets by total, descending,
// truncated to limit. Ties keep the bucket's first-seen order. Each entry
// carries its share of the grand total rounded to one decimal place; shares
// are 0 when the grand total is 0.
func RankCategories(snap core.Snapshot, limit int) []core.CategoryRank {
	ranks := make([]core.CategoryRank, 0, len(snap.CategoryOrder))
	for _, name := range snap.CategoryOrder {
		bucket := snap.Categories[name]
		ranks = append(ranks, core.CategoryRank{
			Name:  name,
			Count: bucket.Count,
			Total: bucket.Total,
		})
	}
	// Categories missing from the order list (should not happen) still rank.
	for name, bucket := range snap.Categories {
		if !containsName(ranks, name) {
			ranks = append(ranks, core.CategoryRank{Name: name, Count: bucket.Count, Total: bucket.Total})
		}
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Total > ranks[j].Total
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	for i := range ranks {
		if snap.TotalAmount > 0 {
			ranks[i].Percent = math.Round(ranks[i].Total/snap.TotalAmount*1000) / 10
		}
	}
	return ranks
}

func containsName(ranks []core.CategoryRank, name string) bool {
	for _, r := range ranks {
		if r.Name == name {
			return true
		}
	}
	return false
}
