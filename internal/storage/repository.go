// Package storage provides a SQLite-backed donation row source for local
// and offline runs. Rows are stored as the sheet stores them: raw text,
// column for column. Parsing stays in the pipeline.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"donasi/internal/core"
	ports "donasi/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.RowReader = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FetchRows implements sheets.RowReader.
func (r *SQLiteRepository) FetchRows(ctx context.Context) ([]core.RawRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT donated_on, donor, category, amount, recipient, method, note
		FROM donations
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	defer rows.Close()

	var out []core.RawRow
	for rows.Next() {
		row := make(core.RawRow, 7)
		if err := rows.Scan(&row[core.ColDate], &row[core.ColDonor], &row[core.ColCategory],
			&row[core.ColAmount], &row[core.ColRecipient], &row[core.ColMethod], &row[core.ColNote]); err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

// SeedIfEmpty inserts the given rows when the donations table has no data
// yet, so a fresh local database renders something on first start.
func (r *SQLiteRepository) SeedIfEmpty(ctx context.Context, rows []core.RawRow) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM donations`).Scan(&count); err != nil {
		return fmt.Errorf("count donations: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO donations (donated_on, donor, category, amount, recipient, method, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		padded := make(core.RawRow, 7)
		copy(padded, row)
		if _, err := stmt.ExecContext(ctx, padded[core.ColDate], padded[core.ColDonor], padded[core.ColCategory],
			padded[core.ColAmount], padded[core.ColRecipient], padded[core.ColMethod], padded[core.ColNote]); err != nil {
			return fmt.Errorf("insert seed row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.InfoContext(ctx, "Seeded donations table", "rows", len(rows))
	return nil
}
