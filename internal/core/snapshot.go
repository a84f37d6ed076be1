package core

import (
	"errors"
	"time"
)

// ErrNotTabular is reported when the upstream response is not a row
// sequence at all. Unlike per-row malformation this is fatal for the cycle.
var ErrNotTabular = errors.New("response is not tabular")

// CategoryBucket is the running count and total for one category within a
// snapshot. Count and Total only grow for rows with a positive amount.
type CategoryBucket struct {
	Count int
	Total float64
}

// Snapshot is the complete set of summary statistics computed from one load
// cycle. It is rebuilt from scratch every cycle and replaced wholesale.
type Snapshot struct {
	TotalAmount         float64
	TransactionCount    int
	UniqueDonorCount    int
	UniqueCategoryCount int

	Categories map[string]CategoryBucket
	// CategoryOrder preserves first-seen order so that ranking ties stay
	// deterministic across cycles.
	CategoryOrder []string

	// LatestTransactionDate is zero when no row carried a valid date.
	LatestTransactionDate time.Time
}

// CategoryRank is one entry of the category ranking view.
type CategoryRank struct {
	Name    string
	Count   int
	Total   float64
	Percent float64 // share of the grand total, one decimal place
}
