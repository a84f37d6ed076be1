package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"donasi/internal/core"
	"donasi/internal/dashboard"
	applog "donasi/internal/log"
	"donasi/internal/sheets/sample"
)

type fakeReader struct {
	rows []core.RawRow
	err  error
}

func (f *fakeReader) FetchRows(_ context.Context) ([]core.RawRow, error) {
	return f.rows, f.err
}

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{
		Component: applog.ComponentHTTP,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
}

func newTestServer(t *testing.T, source *fakeReader, showDonorNames bool) *Server {
	t.Helper()
	ctrl := dashboard.NewController(source, nil, nil, time.Second)
	ctrl.RunCycle(context.Background())
	return NewServer(":0", ctrl, showDonorNames, quietLogger())
}

func TestHandleDashboard(t *testing.T) {
	srv := newTestServer(t, &fakeReader{rows: sample.Dataset()}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if payload.Status != "ok" {
		t.Errorf("Status = %q, want %q", payload.Status, "ok")
	}
	if payload.Stats.TotalAmount != 24300000 {
		t.Errorf("Stats.TotalAmount = %v, want 24300000", payload.Stats.TotalAmount)
	}
	if payload.Stats.TotalAmountLabel != "Rp 24.300.000" {
		t.Errorf("Stats.TotalAmountLabel = %q, want %q", payload.Stats.TotalAmountLabel, "Rp 24.300.000")
	}
	if payload.Stats.DonorCount != 9 {
		t.Errorf("Stats.DonorCount = %d, want 9", payload.Stats.DonorCount)
	}
	if len(payload.Recent) != 15 {
		t.Errorf("len(Recent) = %d, want 15", len(payload.Recent))
	}
	if len(payload.Top) != 3 {
		t.Fatalf("len(Top) = %d, want 3", len(payload.Top))
	}
	if payload.Top[0].Rank != 1 || payload.Top[0].Donor != "PT Maju Jaya" {
		t.Errorf("Top[0] = rank %d donor %q, want rank 1 PT Maju Jaya", payload.Top[0].Rank, payload.Top[0].Donor)
	}
	if len(payload.Categories) != 5 {
		t.Fatalf("len(Categories) = %d, want 5", len(payload.Categories))
	}
	if payload.Categories[0].Name != "Bencana Alam" || payload.Categories[0].Percent != 49.4 {
		t.Errorf("Categories[0] = %q %v%%, want Bencana Alam 49.4%%", payload.Categories[0].Name, payload.Categories[0].Percent)
	}
	if payload.Freshness.StatusText == "" {
		t.Error("Freshness.StatusText is empty")
	}
}

func TestHandleDashboard_DonorRedaction(t *testing.T) {
	srv := newTestServer(t, &fakeReader{rows: sample.Dataset()}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	var payload DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	for i, tx := range payload.Recent {
		if tx.Donor != core.AnonymousDonor {
			t.Errorf("Recent[%d].Donor = %q, want %q", i, tx.Donor, core.AnonymousDonor)
		}
	}
	for i, tx := range payload.Top {
		if tx.Donor != core.AnonymousDonor {
			t.Errorf("Top[%d].Donor = %q, want %q", i, tx.Donor, core.AnonymousDonor)
		}
	}
}

func TestHandleDashboard_ErrorState(t *testing.T) {
	srv := newTestServer(t, &fakeReader{err: errors.New("down")}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}

	var payload DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "error" {
		t.Errorf("Status = %q, want %q", payload.Status, "error")
	}
	if payload.Error != "Gagal memuat data" {
		t.Errorf("Error = %q, want %q", payload.Error, "Gagal memuat data")
	}
}

func TestHandleDashboard_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeReader{rows: sample.Dataset()}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleRefresh(t *testing.T) {
	srv := newTestServer(t, &fakeReader{rows: sample.Dataset()}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
}

func TestHandleNewData(t *testing.T) {
	srv := newTestServer(t, &fakeReader{rows: sample.Dataset()}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/new-data", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["has_new_data"] {
		t.Error("has_new_data = true after loading the same rows, want false")
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, &fakeReader{rows: sample.Dataset()}, true)

	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2)

	if !rl.allow("10.0.0.1") {
		t.Error("first request denied")
	}
	if !rl.allow("10.0.0.1") {
		t.Error("second request denied")
	}
	if rl.allow("10.0.0.1") {
		t.Error("third request allowed, want denied")
	}
	// Other clients are unaffected.
	if !rl.allow("10.0.0.2") {
		t.Error("request from a different client denied")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.1:54321",
			want:       "192.0.2.1",
		},
		{
			name:       "forwarded header wins",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "forwarded chain takes first hop",
			remoteAddr: "10.0.0.1:80",
			forwarded:  "203.0.113.9, 10.0.0.2",
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "short note unchanged",
			in:   "Donasi rutin",
			want: "Donasi rutin",
		},
		{
			name: "long note truncated with ellipsis",
			in:   "Bantuan untuk korban bencana alam di wilayah terdampak gempa bumi",
			want: "Bantuan untuk korban bencana alam di wilayah terda...",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  catatan  ",
			want: "catatan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, noteMaxLen); got != tt.want {
				t.Errorf("truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}
