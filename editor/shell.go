package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/vitrine/theme"
)

// Shell binds the editing session to the persistence collaborator: load the
// stored record into the store, save the working configuration back, and
// reconcile the store with the canonical stored form.
type Shell struct {
	store  *Store
	pers   Persistence
	logger *slog.Logger
}

// NewShell creates a Shell over the given store and collaborator.
func NewShell(store *Store, pers Persistence, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{store: store, pers: pers, logger: logger}
}

// Store exposes the underlying config store for section editors.
func (sh *Shell) Store() *Store { return sh.store }

// Load fetches the persisted record and swaps the loaded configuration into
// the store. A fetch failure leaves the store untouched.
func (sh *Shell) Load(ctx context.Context) error {
	rec, err := sh.pers.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("editor: load: %w", err)
	}
	cfg := theme.Load(rec)
	sh.store.Update(func(theme.Config) theme.Config { return cfg })
	sh.logger.Info("editor: configuration loaded")
	return nil
}

// Save persists the working configuration, then re-fetches the canonical
// stored form and swaps it in, so the editor shows exactly what the store
// normalized. A failed save — or a failed re-fetch — leaves the in-memory
// configuration unchanged: the merchant keeps editing, nothing is lost.
func (sh *Shell) Save(ctx context.Context) error {
	working := sh.store.Get()

	if err := sh.pers.Save(ctx, working.Record()); err != nil {
		return fmt.Errorf("editor: save: %w", err)
	}

	rec, err := sh.pers.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("editor: save: reload canonical: %w", err)
	}
	canonical := theme.Load(rec)
	sh.store.Update(func(theme.Config) theme.Config { return canonical })

	sh.logger.Info("editor: configuration saved")
	return nil
}
