package stats

import (
	"testing"
	"time"

	"donasi/internal/core"
	"donasi/internal/sheets/sample"
)

func TestAggregate_SampleDataset(t *testing.T) {
	snap, issues := Aggregate(sample.Dataset())

	if len(issues) != 0 {
		t.Fatalf("Aggregate() reported %d issues on clean data: %v", len(issues), issues)
	}
	if snap.TotalAmount != 24300000 {
		t.Errorf("TotalAmount = %v, want 24300000", snap.TotalAmount)
	}
	if snap.TransactionCount != 15 {
		t.Errorf("TransactionCount = %d, want 15", snap.TransactionCount)
	}
	if snap.UniqueDonorCount != 9 {
		t.Errorf("UniqueDonorCount = %d, want 9", snap.UniqueDonorCount)
	}
	if snap.UniqueCategoryCount != 5 {
		t.Errorf("UniqueCategoryCount = %d, want 5", snap.UniqueCategoryCount)
	}

	wantLatest := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !snap.LatestTransactionDate.Equal(wantLatest) {
		t.Errorf("LatestTransactionDate = %v, want %v", snap.LatestTransactionDate, wantLatest)
	}

	bencana := snap.Categories["Bencana Alam"]
	if bencana.Total != 12000000 {
		t.Errorf("Bencana Alam total = %v, want 12000000", bencana.Total)
	}
	if bencana.Count != 4 {
		t.Errorf("Bencana Alam count = %d, want 4", bencana.Count)
	}
}

func TestAggregate_DegradedRows(t *testing.T) {
	rows := []core.RawRow{
		{"2024-01-15", "Budi Santoso", "Pendidikan", "500000"},
		{"bukan tanggal", "Sari Wijaya", "Kesehatan", "1000000"},
		{"2024-01-13", "Anonim", "", "gratis"},
		{},
	}

	snap, issues := Aggregate(rows)

	// The bad date and bad amount still let the rest of their rows count.
	if snap.TotalAmount != 1500000 {
		t.Errorf("TotalAmount = %v, want 1500000", snap.TotalAmount)
	}
	if snap.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", snap.TransactionCount)
	}
	if snap.UniqueDonorCount != 2 {
		t.Errorf("UniqueDonorCount = %d, want 2", snap.UniqueDonorCount)
	}

	// Empty category still buckets under the default name.
	if _, ok := snap.Categories[core.DefaultCategory]; !ok {
		t.Errorf("Categories missing %q bucket", core.DefaultCategory)
	}

	if len(issues) != 3 {
		t.Fatalf("Aggregate() reported %d issues, want 3: %v", len(issues), issues)
	}
	wantFields := map[string]bool{"date": false, "amount": false, "row": false}
	for _, issue := range issues {
		wantFields[issue.Field] = true
	}
	for field, seen := range wantFields {
		if !seen {
			t.Errorf("no issue recorded for field %q", field)
		}
	}
}

func TestAggregate_ZeroAmountExcluded(t *testing.T) {
	rows := []core.RawRow{
		{"2024-01-15", "Budi Santoso", "Pendidikan", "0"},
		{"2024-01-14", "Sari Wijaya", "Kesehatan", ""},
	}

	snap, _ := Aggregate(rows)

	if snap.TransactionCount != 0 {
		t.Errorf("TransactionCount = %d, want 0", snap.TransactionCount)
	}
	if snap.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0", snap.TotalAmount)
	}
	// Donors still count even when their rows carry no valid amount.
	if snap.UniqueDonorCount != 2 {
		t.Errorf("UniqueDonorCount = %d, want 2", snap.UniqueDonorCount)
	}
}

func TestAggregate_Empty(t *testing.T) {
	snap, issues := Aggregate(nil)

	if len(issues) != 0 {
		t.Errorf("Aggregate(nil) issues = %v, want none", issues)
	}
	if snap.TransactionCount != 0 || snap.TotalAmount != 0 || snap.UniqueDonorCount != 0 {
		t.Errorf("Aggregate(nil) = %+v, want zero snapshot", snap)
	}
	if !snap.LatestTransactionDate.IsZero() {
		t.Errorf("LatestTransactionDate = %v, want zero", snap.LatestTransactionDate)
	}
}
