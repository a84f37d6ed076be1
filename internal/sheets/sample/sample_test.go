package sample

import (
	"context"
	"testing"
)

func TestDataset(t *testing.T) {
	rows := Dataset()

	if len(rows) != 15 {
		t.Fatalf("Dataset() returned %d rows, want 15", len(rows))
	}
	for i, row := range rows {
		if len(row) != 7 {
			t.Errorf("row %d has %d cells, want 7", i, len(row))
		}
		if row.DateText() == "" {
			t.Errorf("row %d has empty date", i)
		}
	}
}

func TestDataset_ReturnsFreshCopies(t *testing.T) {
	first := Dataset()
	first[0][0] = "dirubah"

	second := Dataset()
	if second[0][0] == "dirubah" {
		t.Error("Dataset() shares backing storage between calls")
	}
}

func TestStore_FetchRows(t *testing.T) {
	store := New()

	rows, err := store.FetchRows(context.Background())
	if err != nil {
		t.Fatalf("FetchRows() error = %v", err)
	}
	if len(rows) != 15 {
		t.Errorf("FetchRows() returned %d rows, want 15", len(rows))
	}
}
