// Package dashboard owns the load cycle: fetch rows, aggregate, rank,
// evaluate freshness, and hold the current results for the presentation
// consumer. State is replaced wholesale each cycle, never patched.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"donasi/internal/core"
	"donasi/internal/freshness"
	ports "donasi/internal/sheets"
	"donasi/internal/stats"
)

// Status is the display state of the current results.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
	StatusError  Status = "error"
)

// Results is the complete read-only output of one load cycle.
type Results struct {
	Status       Status
	ErrorMessage string // set only for StatusError

	Snapshot   core.Snapshot
	Recent     []core.RawRow // date descending
	Top        []core.RawRow // top-N by amount
	Categories []core.CategoryRank
	Freshness  freshness.State

	Sequence     uint64
	LoadedAt     time.Time
	FromFallback bool
}

// Notifier publishes a notification after each completed cycle. Optional.
type Notifier interface {
	PublishDashboardUpdated(ctx context.Context, seq uint64, totalAmount float64, txCount int) error
}

// Controller runs load cycles against a row source, falling back to the
// built-in sample source on fetch failure. It is safe for concurrent use:
// a refresh requested while a cycle is in flight is coalesced, never run
// concurrently.
type Controller struct {
	source       ports.RowReader
	fallback     ports.RowReader
	notifier     Notifier
	fetchTimeout time.Duration

	busy atomic.Bool
	seq  atomic.Uint64

	mu      sync.RWMutex
	current Results

	// refreshC coalesces on-demand refresh requests into the scheduler loop.
	refreshC chan struct{}
	stopOnce sync.Once
	stopC    chan struct{}
	doneC    chan struct{}

	now func() time.Time // test hook
}

func NewController(source, fallback ports.RowReader, notifier Notifier, fetchTimeout time.Duration) *Controller {
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	return &Controller{
		source:       source,
		fallback:     fallback,
		notifier:     notifier,
		fetchTimeout: fetchTimeout,
		refreshC:     make(chan struct{}, 1),
		stopC:        make(chan struct{}),
		doneC:        make(chan struct{}),
		now:          time.Now,
	}
}

// Current returns the latest results. Consumers must treat them as fully
// replaced each cycle.
func (c *Controller) Current() Results {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Refresh requests a load cycle. Requests arriving while one is already
// queued or running are coalesced into a single upcoming cycle.
func (c *Controller) Refresh() {
	select {
	case c.refreshC <- struct{}{}:
	default:
	}
}

// Start runs an immediate load cycle, then serves timer ticks and Refresh
// requests from a single goroutine until Stop or context cancellation.
func (c *Controller) Start(ctx context.Context, interval time.Duration) {
	go func() {
		defer close(c.doneC)

		c.RunCycle(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stopC:
				return
			case <-ticker.C:
				c.RunCycle(ctx)
			case <-c.refreshC:
				c.RunCycle(ctx)
			}
		}
	}()
}

// Stop ends the scheduler loop and waits for it to finish.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stopC) })
	<-c.doneC
}

// RunCycle performs one fetch → aggregate → rank → freshness pass and
// replaces the current results. If a cycle is already in flight the call is
// ignored and the current results are returned unchanged.
func (c *Controller) RunCycle(ctx context.Context) Results {
	if !c.busy.CompareAndSwap(false, true) {
		slog.DebugContext(ctx, "Load cycle already in flight, coalescing")
		return c.Current()
	}
	defer c.busy.Store(false)

	seq := c.seq.Add(1)
	started := c.now()

	rows, fromFallback, err := c.fetchRows(ctx)
	if err != nil {
		res := Results{
			Status:       StatusError,
			ErrorMessage: "Gagal memuat data",
			Freshness:    freshness.Evaluate(time.Time{}, c.now()),
			Sequence:     seq,
			LoadedAt:     c.now(),
		}
		slog.ErrorContext(ctx, "Load cycle failed", "sequence", seq, "error", err)
		c.replace(res)
		return res
	}

	res := c.compute(ctx, rows)
	res.Sequence = seq
	res.LoadedAt = c.now()
	res.FromFallback = fromFallback

	c.replace(res)

	slog.InfoContext(ctx, "Load cycle complete",
		"sequence", seq,
		"status", string(res.Status),
		"rows", len(rows),
		"total_amount", res.Snapshot.TotalAmount,
		"from_fallback", fromFallback,
		"duration", c.now().Sub(started))

	if c.notifier != nil && res.Status == StatusOK {
		if err := c.notifier.PublishDashboardUpdated(ctx, seq, res.Snapshot.TotalAmount, res.Snapshot.TransactionCount); err != nil {
			slog.WarnContext(ctx, "Failed to publish update notification", "sequence", seq, "error", err)
		}
	}
	return res
}

// fetchRows reads from the primary source, substituting the sample dataset
// on transport failures. A malformed, non-tabular response is fatal for the
// cycle and is not papered over with sample data.
func (c *Controller) fetchRows(ctx context.Context) ([]core.RawRow, bool, error) {
	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	rows, err := c.source.FetchRows(fctx)
	if err == nil {
		return rows, false, nil
	}
	if errors.Is(err, core.ErrNotTabular) {
		return nil, false, err
	}

	slog.WarnContext(ctx, "Source fetch failed, using sample data", "error", err)
	if c.fallback == nil {
		return nil, false, err
	}

	rows, ferr := c.fallback.FetchRows(ctx)
	if ferr != nil {
		return nil, false, errors.Join(err, ferr)
	}
	return rows, true, nil
}

// compute runs the aggregation and the independent ranking views over the
// same row sequence, then derives freshness from the snapshot's max date.
func (c *Controller) compute(ctx context.Context, rows []core.RawRow) Results {
	if len(rows) == 0 {
		return Results{
			Status:    StatusNoData,
			Snapshot:  core.Snapshot{Categories: map[string]core.CategoryBucket{}},
			Freshness: freshness.Evaluate(time.Time{}, c.now()),
		}
	}

	var (
		snap   core.Snapshot
		issues []stats.Issue
		recent []core.RawRow
		top    []core.RawRow
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, issues = stats.Aggregate(rows)
		return nil
	})
	g.Go(func() error {
		recent = stats.SortByDateDesc(rows)
		return nil
	})
	g.Go(func() error {
		top = stats.TopDonations(rows, stats.TopDonationsLimit)
		return nil
	})
	_ = g.Wait() // the view computations cannot fail, only degrade per row

	for _, issue := range issues {
		slog.WarnContext(ctx, "Skipped field during aggregation",
			"row", issue.Row, "field", issue.Field, "reason", issue.Reason)
	}

	return Results{
		Status:     StatusOK,
		Snapshot:   snap,
		Recent:     recent,
		Top:        top,
		Categories: stats.RankCategories(snap, stats.CategoryRankLimit),
		Freshness:  freshness.Evaluate(snap.LatestTransactionDate, c.now()),
	}
}

// HasNewData fetches the source's rows and reports whether their latest
// transaction date is strictly newer than the current snapshot's, without
// replacing any state.
func (c *Controller) HasNewData(ctx context.Context) (bool, error) {
	fctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	rows, err := c.source.FetchRows(fctx)
	if err != nil {
		return false, err
	}

	var latest time.Time
	for _, row := range rows {
		if t, ok := core.ParseDate(row.DateText()); ok && t.After(latest) {
			latest = t
		}
	}
	if latest.IsZero() {
		return false, nil
	}

	cur := c.Current().Snapshot.LatestTransactionDate
	return cur.IsZero() || latest.After(cur), nil
}

func (c *Controller) replace(res Results) {
	c.mu.Lock()
	c.current = res
	c.mu.Unlock()
}
