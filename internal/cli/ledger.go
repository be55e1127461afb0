package cli

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/logging"
	"github.com/rshade/carbontrack/internal/store"
)

// nowFunc is the clock used by every command.
var nowFunc = time.Now //nolint:gochecknoglobals // Overridden in tests for a fixed clock

// openLedger opens the configured ledger backend.
func openLedger(ctx context.Context) (store.Provider, error) {
	cfg := config.GetGlobalConfig()
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, fmt.Errorf("resolving ledger path: %w", err)
	}
	if cfg.Storage.Path == "" {
		if err = config.EnsureSubDirs(); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
	}
	return store.Open(ctx, cfg.Storage.Backend, path)
}

// withLedger opens the ledger, runs fn and closes it.
func withLedger(ctx context.Context, fn func(store.Provider) error) error {
	p, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			logging.FromContext(ctx).Warn().Err(cerr).Msg("closing ledger")
		}
	}()
	return fn(p)
}

// loadLedger fetches entries (newest first) and goals concurrently.
func loadLedger(ctx context.Context, p store.Provider) ([]footprint.Entry, []footprint.Goal, error) {
	var (
		entries []footprint.Entry
		goals   []footprint.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = p.ListEntries(gctx)
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = p.ListGoals(gctx)
		if err != nil {
			return fmt.Errorf("listing goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("component", "cli").
		Str("operation", "load_ledger").
		Int("entries", len(entries)).
		Int("goals", len(goals)).
		Msg("ledger loaded")
	return entries, goals, nil
}

// audit records a ledger mutation in the audit log.
func audit(ctx context.Context, action, target string, params map[string]string, err error) {
	entry := logging.NewAuditEntry(action, target, logging.TraceIDFromContext(ctx))
	for k, v := range params {
		entry.WithParam(k, v)
	}
	logging.AuditLoggerFromContext(ctx).Log(ctx, entry.Finish(err))
}
