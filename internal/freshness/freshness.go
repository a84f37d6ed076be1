// Package freshness classifies how stale the most recent known transaction
// is relative to now.
package freshness

import (
	"fmt"
	"math"
	"time"
)

// Bucket is the coarse age classification of the current data.
type Bucket string

const (
	Fresh Bucket = "fresh" // up to and including 24h old
	Warn  Bucket = "warn"  // more than 24h, up to and including 72h
	Stale Bucket = "stale" // more than 72h
)

// State is recomputed every load cycle; it is never persisted.
type State struct {
	LastUpdate    time.Time
	AgeHours      int
	AgeBucket     Bucket
	RelativeLabel string
}

// Evaluate derives the freshness state from the latest observed transaction
// date. A zero latest falls back to now: a display default, not a claim
// about the data.
func Evaluate(latest, now time.Time) State {
	last := latest
	if last.IsZero() {
		last = now
	}

	ageHours := int(math.Floor(now.Sub(last).Hours()))

	bucket := Fresh
	switch {
	case ageHours > 72:
		bucket = Stale
	case ageHours > 24:
		bucket = Warn
	}

	return State{
		LastUpdate:    last,
		AgeHours:      ageHours,
		AgeBucket:     bucket,
		RelativeLabel: RelativeTime(last, now),
	}
}

// RelativeTime renders "how long ago" in the dashboard's language, checking
// unit boundaries in priority order with integer-floor division.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Baru saja"
	case diff < time.Hour:
		return fmt.Sprintf("%d menit yang lalu", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d jam yang lalu", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d hari yang lalu", int(diff.Hours()/24))
	}
}

// StatusText maps a bucket to the label shown next to the last-update badge.
func (b Bucket) StatusText() string {
	switch b {
	case Warn:
		return "Perlu update"
	case Stale:
		return "Ketinggalan"
	default:
		return "Aktif"
	}
}
