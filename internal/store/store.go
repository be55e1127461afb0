// Package store persists the footprint ledger: the recorded entries and the
// user's goals. Two backends implement Provider, a single JSON document and
// a SQLite database.
package store

import (
	"context"
	"fmt"

	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/logging"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Provider is a ledger backend. Implementations are safe for concurrent use
// within one process.
type Provider interface {
	// Init creates the ledger if it does not exist.
	Init(ctx context.Context) error
	Close() error

	AddEntry(ctx context.Context, e footprint.Entry) error
	GetEntry(ctx context.Context, id string) (footprint.Entry, error)
	// ListEntries returns every entry, newest first.
	ListEntries(ctx context.Context) ([]footprint.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	// ImportEntries adds entries in one write. With replace set the existing
	// entries are removed first.
	ImportEntries(ctx context.Context, entries []footprint.Entry, replace bool) error

	AddGoal(ctx context.Context, g footprint.Goal) error
	GetGoal(ctx context.Context, id string) (footprint.Goal, error)
	ListGoals(ctx context.Context) ([]footprint.Goal, error)
	UpdateGoal(ctx context.Context, g footprint.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	// Path returns the backing file.
	Path() string
}

// Open returns the backend named by backend at path, initialised.
func Open(ctx context.Context, backend, path string) (Provider, error) {
	var p Provider
	switch backend {
	case BackendJSON, "":
		p = NewJSONStore(path)
	case BackendSQLite:
		p = NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	if err := p.Init(ctx); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("opening %s ledger at %s: %w", backend, path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "store").
		Str("backend", backend).
		Str("path", path).
		Msg("ledger opened")
	return p, nil
}
