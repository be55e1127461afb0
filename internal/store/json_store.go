package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/carbontrack/internal/footprint"
)

// SchemaVersion is the ledger document version written by this release.
const SchemaVersion = "1.0.0"

// supportedSchemas is the range of document versions this release reads.
const supportedSchemas = ">= 1.0.0, < 2.0.0"

// Lockfile tuning.
const (
	lockRetries    = 20
	lockRetryDelay = 50 * time.Millisecond
	staleLockAge   = 30 * time.Second
)

// document is the on-disk JSON ledger.
type document struct {
	SchemaVersion string            `json:"schema_version"`
	Entries       []footprint.Entry `json:"entries"`
	Goals         []footprint.Goal  `json:"goals"`
}

// JSONStore keeps the ledger in one JSON file, rewritten atomically on
// every change. Writers from other processes are excluded with a lockfile.
type JSONStore struct {
	mu   sync.RWMutex
	path string
}

var _ Provider = (*JSONStore)(nil)

// NewJSONStore returns a store backed by path. Nothing is read until use.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the ledger file.
func (s *JSONStore) Path() string { return s.path }

// Close is a no-op; the file is not held open.
func (s *JSONStore) Close() error { return nil }

// Init writes an empty ledger if the file does not exist and otherwise
// checks that the existing one is readable.
func (s *JSONStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		_, loadErr := s.load()
		return loadErr
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking ledger file: %w", err)
	}

	unlock, err := s.acquireFileLock()
	if err != nil {
		return err
	}
	defer unlock()
	return s.save(&document{SchemaVersion: SchemaVersion})
}

// AddEntry appends e. Its id must be unused.
func (s *JSONStore) AddEntry(ctx context.Context, e footprint.Entry) error {
	return s.update(ctx, func(doc *document) error {
		for _, existing := range doc.Entries {
			if existing.ID == e.ID {
				return fmt.Errorf("%w: entry %s", ErrDuplicateID, e.ID)
			}
		}
		doc.Entries = append(doc.Entries, e)
		return nil
	})
}

// GetEntry returns the entry with id.
func (s *JSONStore) GetEntry(ctx context.Context, id string) (footprint.Entry, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return footprint.Entry{}, err
	}
	for _, e := range doc.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return footprint.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// ListEntries returns all entries, newest first.
func (s *JSONStore) ListEntries(ctx context.Context) ([]footprint.Entry, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	entries := doc.Entries
	footprint.SortNewestFirst(entries)
	return entries, nil
}

// DeleteEntry removes the entry with id.
func (s *JSONStore) DeleteEntry(ctx context.Context, id string) error {
	return s.update(ctx, func(doc *document) error {
		for i, e := range doc.Entries {
			if e.ID == id {
				doc.Entries = append(doc.Entries[:i], doc.Entries[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	})
}

// ImportEntries adds entries in one write, optionally replacing all
// existing entries. Duplicate ids fail the whole import.
func (s *JSONStore) ImportEntries(ctx context.Context, entries []footprint.Entry, replace bool) error {
	return s.update(ctx, func(doc *document) error {
		if replace {
			doc.Entries = nil
		}
		seen := make(map[string]struct{}, len(doc.Entries)+len(entries))
		for _, e := range doc.Entries {
			seen[e.ID] = struct{}{}
		}
		for _, e := range entries {
			if _, dup := seen[e.ID]; dup {
				return fmt.Errorf("%w: entry %s", ErrDuplicateID, e.ID)
			}
			seen[e.ID] = struct{}{}
		}
		doc.Entries = append(doc.Entries, entries...)
		return nil
	})
}

// AddGoal appends g. Its id must be unused.
func (s *JSONStore) AddGoal(ctx context.Context, g footprint.Goal) error {
	return s.update(ctx, func(doc *document) error {
		for _, existing := range doc.Goals {
			if existing.ID == g.ID {
				return fmt.Errorf("%w: goal %s", ErrDuplicateID, g.ID)
			}
		}
		doc.Goals = append(doc.Goals, g)
		return nil
	})
}

// GetGoal returns the goal with id.
func (s *JSONStore) GetGoal(ctx context.Context, id string) (footprint.Goal, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return footprint.Goal{}, err
	}
	for _, g := range doc.Goals {
		if g.ID == id {
			return g, nil
		}
	}
	return footprint.Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
}

// ListGoals returns all goals in insertion order.
func (s *JSONStore) ListGoals(ctx context.Context) ([]footprint.Goal, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Goals, nil
}

// UpdateGoal replaces the goal with g's id.
func (s *JSONStore) UpdateGoal(ctx context.Context, g footprint.Goal) error {
	return s.update(ctx, func(doc *document) error {
		for i := range doc.Goals {
			if doc.Goals[i].ID == g.ID {
				doc.Goals[i] = g
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrGoalNotFound, g.ID)
	})
}

// DeleteGoal removes the goal with id.
func (s *JSONStore) DeleteGoal(ctx context.Context, id string) error {
	return s.update(ctx, func(doc *document) error {
		for i, g := range doc.Goals {
			if g.ID == id {
				doc.Goals = append(doc.Goals[:i], doc.Goals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	})
}

func (s *JSONStore) read(ctx context.Context) (*document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// update loads the document under both locks, applies fn and saves the
// result. Nothing is written when fn fails.
func (s *JSONStore) update(ctx context.Context, fn func(*document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock()
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err = fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *JSONStore) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStoreNotInitialized
		}
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var doc document
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
	}
	if err = checkSchema(doc.SchemaVersion); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *JSONStore) save(doc *document) error {
	doc.SchemaVersion = SchemaVersion
	if doc.Entries == nil {
		doc.Entries = []footprint.Entry{}
	}
	if doc.Goals == nil {
		doc.Goals = []footprint.Goal{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling ledger: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err = os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing ledger temp file: %w", err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming ledger temp file: %w", err)
	}
	return nil
}

// checkSchema accepts documents whose version falls in supportedSchemas.
func checkSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedSchema, version)
	}
	c, err := semver.NewConstraint(supportedSchemas)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, version, supportedSchemas)
	}
	return nil
}

// acquireFileLock takes the cross-process lockfile next to the ledger and
// returns its release function.
func (s *JSONStore) acquireFileLock() (func(), error) {
	lockPath := s.path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for range lockRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("creating lockfile: %w", err)
		}
		if removeStaleLock(lockPath) {
			continue
		}
		time.Sleep(lockRetryDelay)
	}
	return nil, fmt.Errorf("could not acquire lock on %s", lockPath)
}

// removeStaleLock removes a lockfile older than staleLockAge whose owner is
// gone, and reports whether it did.
func removeStaleLock(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}

	if pidData, readErr := os.ReadFile(lockPath); readErr == nil {
		var pid int
		if _, scanErr := fmt.Sscanf(string(pidData), "%d", &pid); scanErr == nil && pid > 0 {
			if proc, findErr := os.FindProcess(pid); findErr == nil && proc.Signal(syscall.Signal(0)) == nil {
				return false
			}
		}
	}
	_ = os.Remove(lockPath)
	return true
}
