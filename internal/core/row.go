package core

import (
	"fmt"
	"strings"
)

// Column layout of the donations range (A2:G). Rows are positional tuples,
// not named records; a reordered sheet degrades silently.
const (
	ColDate = iota
	ColDonor
	ColCategory
	ColAmount
	ColRecipient
	ColMethod
	ColNote
)

const (
	// DefaultCategory is assigned when column C is empty.
	DefaultCategory = "Lainnya"

	// AnonymousDonor is the display placeholder for missing or redacted names.
	AnonymousDonor = "Donatur Anonim"
)

// RawRow is one donation record as fetched from the tabular source.
// Any field may be absent; accessors return "" for missing fields.
type RawRow []string

func (r RawRow) field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func (r RawRow) DateText() string   { return r.field(ColDate) }
func (r RawRow) Donor() string      { return r.field(ColDonor) }
func (r RawRow) AmountText() string { return r.field(ColAmount) }
func (r RawRow) Recipient() string  { return r.field(ColRecipient) }
func (r RawRow) Method() string     { return r.field(ColMethod) }
func (r RawRow) Note() string       { return r.field(ColNote) }

// Category returns column C, or DefaultCategory when empty.
func (r RawRow) Category() string {
	if c := r.field(ColCategory); c != "" {
		return c
	}
	return DefaultCategory
}

// donorSentinels are values that mean "no identifiable donor". They never
// count as distinct donors even when they appear in many rows.
var donorSentinels = map[string]struct{}{
	"Anonim": {},
	"-":      {},
}

// IsIdentifiableDonor reports whether name identifies a real donor after
// trimming. Empty strings and sentinel values do not.
func IsIdentifiableDonor(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	_, sentinel := donorSentinels[name]
	return !sentinel
}

// RowsFromValues converts a values matrix as returned by the Sheets API into
// RawRows. Cells may arrive as strings or numbers; everything is stringified.
func RowsFromValues(values [][]interface{}) []RawRow {
	rows := make([]RawRow, 0, len(values))
	for _, v := range values {
		row := make(RawRow, len(v))
		for i, cell := range v {
			if cell == nil {
				continue
			}
			row[i] = strings.TrimSpace(fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows
}
