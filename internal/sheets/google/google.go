package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"donasi/internal/cache"
	"donasi/internal/core"
	ports "donasi/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// rowCacheTTL keeps visibility-triggered reloads within a short window from
// re-hitting the Sheets API. Well below the 5 minute refresh interval.
const rowCacheTTL = 30 * time.Second

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	rowCache      *cache.TTLCache[[]core.RawRow]
}

// Ensure interface conformance
var _ ports.RowReader = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_API_KEY for public spreadsheets, or GOOGLE_SERVICE_ACCOUNT_JSON /
// GOOGLE_SERVICE_ACCOUNT_FILE / GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Dana").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Dana"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		rowCache:      cache.New[[]core.RawRow](4, rowCacheTTL),
	}, nil
}

// newSheetsService initializes a Sheets service. An API key is enough for a
// publicly readable spreadsheet; a service account works for private ones.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case apiKey != "":
		slog.InfoContext(ctx, "Using API key auth for Sheets", "scope", "read-only")
		return gsheet.NewService(ctx,
			goption.WithAPIKey(apiKey),
			goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	case serviceAccountJSON != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON([]byte(serviceAccountJSON)),
			goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	case serviceAccountFile != "":
		credentialsJSON, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON(credentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	default:
		return nil, errors.New("missing credentials (set GOOGLE_API_KEY, GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// FetchRows reads the donations range (A2:G, skipping the header row) and
// returns it as raw rows. A short-lived cache absorbs bursts of reloads.
func (c *Client) FetchRows(ctx context.Context) ([]core.RawRow, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A2:G", c.sheetName)
	if cached, ok := c.rowCache.Get(rng); ok {
		slog.DebugContext(ctx, "Serving rows from cache", "range", rng, "rows", len(cached))
		return cached, nil
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("read %s: %w", rng, core.ErrNotTabular)
	}

	rows := core.RowsFromValues(resp.Values)
	c.rowCache.Set(rng, rows)

	slog.InfoContext(ctx, "Fetched donation rows", "range", rng, "rows", len(rows))
	return rows, nil
}
