package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "ISO date",
			raw:    "2024-01-15",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "RFC3339",
			raw:    "2024-01-15T08:30:00Z",
			want:   time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "datetime without zone",
			raw:    "2024-01-15 08:30:00",
			want:   time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "day first slashes",
			raw:    "15/01/2024",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "year first slashes",
			raw:    "2024/01/15",
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "empty",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "garbage",
			raw:    "kemarin",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)); got != "15 Jan 2024" {
		t.Errorf("FormatDate() = %q, want %q", got, "15 Jan 2024")
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q, want %q", got, "-")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 1, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Errorf("SameDay(%v, %v) = false, want true", a, b)
	}
	if SameDay(b, c) {
		t.Errorf("SameDay(%v, %v) = true, want false", b, c)
	}
}
