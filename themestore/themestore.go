// Package themestore is the SQLite-backed theme persistence collaborator.
// It stores one wire record per checkout and applies partial updates with
// the theme merge semantics, so what comes back from a read is always the
// full normalized record.
package themestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/vitrine/theme"
)

// Schema creates the theme_records table.
const Schema = `
CREATE TABLE IF NOT EXISTS theme_records (
	checkout_id TEXT PRIMARY KEY,
	record      TEXT NOT NULL,
	updated_at  INTEGER NOT NULL
);
`

// Store persists theme records.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a Store over an opened database. The schema must already be
// applied (dbopen.WithSchema(themestore.Schema)).
func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Get returns the stored record for a checkout. A checkout that was never
// saved yields an empty record, which loads as the full default theme.
func (s *Store) Get(ctx context.Context, checkoutID string) (theme.Record, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM theme_records WHERE checkout_id = ?`, checkoutID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return theme.Record{}, nil
	}
	if err != nil {
		return theme.Record{}, fmt.Errorf("themestore: get %s: %w", checkoutID, err)
	}
	return theme.DecodeRecord([]byte(raw)), nil
}

// Put stores the record as-is, replacing any previous one.
func (s *Store) Put(ctx context.Context, checkoutID string, rec theme.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("themestore: put %s: %w", checkoutID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO theme_records (checkout_id, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(checkout_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		checkoutID, string(raw), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("themestore: put %s: %w", checkoutID, err)
	}
	return nil
}

// Merge applies a partial record over the stored configuration and persists
// the result as a full normalized record, which it returns. Fields absent
// from the partial are preserved; invalid enum values normalize on the way
// through.
func (s *Store) Merge(ctx context.Context, checkoutID string, partial theme.Record) (theme.Record, error) {
	stored, err := s.Get(ctx, checkoutID)
	if err != nil {
		return theme.Record{}, err
	}

	merged := theme.Merge(theme.Load(stored), partial)
	full := merged.Record()

	if err := s.Put(ctx, checkoutID, full); err != nil {
		return theme.Record{}, err
	}
	s.logger.Debug("themestore: merged", "checkout", checkoutID)
	return full, nil
}
