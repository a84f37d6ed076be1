package http

import (
	"strings"
	"time"

	"donasi/internal/core"
	"donasi/internal/dashboard"
	"donasi/internal/freshness"
)

const noteMaxLen = 50

// DashboardResponse is the full per-cycle payload. The client must treat it
// as a complete replacement of whatever it rendered before.
type DashboardResponse struct {
	Status       string            `json:"status"`
	Error        string            `json:"error,omitempty"`
	Sequence     uint64            `json:"sequence"`
	LoadedAt     time.Time         `json:"loaded_at"`
	FromFallback bool              `json:"from_fallback"`
	Stats        StatsView         `json:"stats"`
	Recent       []TransactionView `json:"recent"`
	Top          []TopDonationView `json:"top"`
	Categories   []CategoryView    `json:"categories"`
	Freshness    FreshnessView     `json:"freshness"`
}

type StatsView struct {
	TotalAmount      float64 `json:"total_amount"`
	TotalAmountLabel string  `json:"total_amount_label"`
	TransactionCount int     `json:"transaction_count"`
	DonorCount       int     `json:"donor_count"`
	CategoryCount    int     `json:"category_count"`
}

type TransactionView struct {
	Date        string  `json:"date"`
	DateLabel   string  `json:"date_label"`
	Donor       string  `json:"donor"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	AmountLabel string  `json:"amount_label"`
	Recipient   string  `json:"recipient"`
	Method      string  `json:"method"`
	Note        string  `json:"note"`
	TimeAgo     string  `json:"time_ago"`
	IsToday     bool    `json:"is_today"`
}

type TopDonationView struct {
	Rank int `json:"rank"`
	TransactionView
}

type CategoryView struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"total_label"`
	Percent    float64 `json:"percent"`
}

type FreshnessView struct {
	LastUpdate    time.Time `json:"last_update"`
	AgeBucket     string    `json:"age_bucket"`
	StatusText    string    `json:"status_text"`
	RelativeLabel string    `json:"relative_label"`
}

// buildDashboardResponse converts controller results into the wire payload.
// Donor redaction happens here, not in the ranking pipeline.
func buildDashboardResponse(res dashboard.Results, showDonorNames bool, now time.Time) DashboardResponse {
	out := DashboardResponse{
		Status:       string(res.Status),
		Error:        res.ErrorMessage,
		Sequence:     res.Sequence,
		LoadedAt:     res.LoadedAt,
		FromFallback: res.FromFallback,
		Stats: StatsView{
			TotalAmount:      res.Snapshot.TotalAmount,
			TotalAmountLabel: core.FormatCurrency(res.Snapshot.TotalAmount),
			TransactionCount: res.Snapshot.TransactionCount,
			DonorCount:       res.Snapshot.UniqueDonorCount,
			CategoryCount:    res.Snapshot.UniqueCategoryCount,
		},
		Recent:     make([]TransactionView, 0, len(res.Recent)),
		Top:        make([]TopDonationView, 0, len(res.Top)),
		Categories: make([]CategoryView, 0, len(res.Categories)),
		Freshness: FreshnessView{
			LastUpdate:    res.Freshness.LastUpdate,
			AgeBucket:     string(res.Freshness.AgeBucket),
			StatusText:    res.Freshness.AgeBucket.StatusText(),
			RelativeLabel: res.Freshness.RelativeLabel,
		},
	}

	for _, row := range res.Recent {
		out.Recent = append(out.Recent, transactionView(row, showDonorNames, now))
	}
	for i, row := range res.Top {
		out.Top = append(out.Top, TopDonationView{
			Rank:            i + 1,
			TransactionView: transactionView(row, showDonorNames, now),
		})
	}
	for _, rank := range res.Categories {
		out.Categories = append(out.Categories, CategoryView{
			Name:       rank.Name,
			Count:      rank.Count,
			Total:      rank.Total,
			TotalLabel: core.FormatCurrency(rank.Total),
			Percent:    rank.Percent,
		})
	}
	return out
}

func transactionView(row core.RawRow, showDonorNames bool, now time.Time) TransactionView {
	donor := row.Donor()
	if !showDonorNames || donor == "" {
		donor = core.AnonymousDonor
	}

	amount := core.ParseAmount(row.AmountText())
	t, hasDate := core.ParseDate(row.DateText())

	view := TransactionView{
		Date:        row.DateText(),
		DateLabel:   core.FormatDate(t),
		Donor:       donor,
		Category:    row.Category(),
		Amount:      amount,
		AmountLabel: core.FormatCurrency(amount),
		Recipient:   orDash(row.Recipient()),
		Method:      orDash(row.Method()),
		Note:        truncate(row.Note(), noteMaxLen),
	}
	if hasDate {
		view.TimeAgo = freshness.RelativeTime(t, now)
		view.IsToday = core.SameDay(t, now)
	}
	return view
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}
