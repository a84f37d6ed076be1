// Package http exposes the per-cycle dashboard results as a small JSON API.
// It is a thin presentation boundary: all computation happens in the
// dashboard controller, all formatting in core.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"donasi/internal/dashboard"
	applog "donasi/internal/log"
)

// refreshRequestsPerMinute bounds how often a single client can force a
// source fetch. Refreshes are coalesced anyway, so this only throttles
// probe traffic against the upstream source.
const refreshRequestsPerMinute = 10

type Server struct {
	http.Server
	ctrl           *dashboard.Controller
	showDonorNames bool
	logger         *applog.Logger
}

func NewServer(addr string, ctrl *dashboard.Controller, showDonorNames bool, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr: addr,
		},
		ctrl:           ctrl,
		showDonorNames: showDonorNames,
		logger:         logger.WithComponent(applog.ComponentHTTP),
	}

	limiter := newRateLimiter(refreshRequestsPerMinute)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.Handle("/api/refresh", limiter.middleware(http.HandlerFunc(s.handleRefresh)))
	mux.Handle("/api/new-data", limiter.middleware(http.HandlerFunc(s.handleNewData)))

	s.Handler = applog.Middleware(s.logger)(corsMiddleware(mux))
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDashboard returns the complete current results: snapshot stats,
// date-descending list, top donations, category ranking, freshness.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	res := s.ctrl.Current()
	payload := buildDashboardResponse(res, s.showDonorNames, time.Now())

	status := http.StatusOK
	if res.Status == dashboard.StatusError {
		// The payload still carries the error state; the status code lets
		// dumb clients show a retry affordance.
		status = http.StatusBadGateway
	}
	writeJSON(w, status, payload)
}

// handleRefresh is the manual retry entry point. The request is coalesced
// with any cycle already in flight.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.ctrl.Refresh()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh_requested"})
}

// handleNewData reports whether the source holds transactions newer than
// the current snapshot, without replacing any state.
func (s *Server) handleNewData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	hasNew, err := s.ctrl.HasNewData(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "New-data check failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "source unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_new_data": hasNew})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
