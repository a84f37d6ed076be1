package sheets

import (
	"context"

	"donasi/internal/core"
)

// Ports for outbound adapters.
type (
	// RowReader fetches the current donation rows from a tabular source.
	// A successful call with zero rows is the "no data" case, not an error.
	RowReader interface {
		FetchRows(ctx context.Context) ([]core.RawRow, error)
	}
)
