package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // database/sql driver

	"github.com/rshade/carbontrack/internal/footprint"
	"github.com/rshade/carbontrack/internal/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	entryColumns = `id, date, category, subcategory, amount, unit, carbon_footprint, description`
	goalColumns  = `id, title, target, current, unit, deadline, category, status`
)

// SQLiteStore keeps the ledger in a SQLite database.
type SQLiteStore struct {
	mu   sync.RWMutex
	path string
	db   *sql.DB
}

var _ Provider = (*SQLiteStore)(nil)

// NewSQLiteStore returns a store backed by the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Init opens the database, creating it if needed, and applies pending
// migrations.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+s.path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("reading embedded migrations: %w", err)
	}
	if _, err = migration.NewRunner(db, sub).Apply(ctx); err != nil {
		_ = db.Close()
		if errors.Is(err, migration.ErrSchemaTooNew) {
			return fmt.Errorf("%w: %w", ErrUnsupportedSchema, err)
		}
		return fmt.Errorf("migrating ledger: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db, nil
}

// AddEntry inserts e. Its id must be unused.
func (s *SQLiteStore) AddEntry(ctx context.Context, e footprint.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	return withTx(ctx, db, func(tx *sql.Tx) error {
		return insertEntry(ctx, tx, e)
	})
}

// GetEntry returns the entry with id.
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (footprint.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return footprint.Entry{}, err
	}
	row := db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return footprint.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, err
}

// ListEntries returns all entries, newest first, insertion order within a day.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]footprint.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY date DESC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []footprint.Entry
	for rows.Next() {
		e, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes the entry with id.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return requireAffected(res, ErrEntryNotFound, id)
}

// ImportEntries inserts entries in one transaction, optionally after
// deleting all existing entries.
func (s *SQLiteStore) ImportEntries(ctx context.Context, entries []footprint.Entry, replace bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	return withTx(ctx, db, func(tx *sql.Tx) error {
		if replace {
			if _, delErr := tx.ExecContext(ctx, `DELETE FROM entries`); delErr != nil {
				return fmt.Errorf("clearing entries: %w", delErr)
			}
		}
		for _, e := range entries {
			if insErr := insertEntry(ctx, tx, e); insErr != nil {
				return insErr
			}
		}
		return nil
	})
}

// AddGoal inserts g. Its id must be unused.
func (s *SQLiteStore) AddGoal(ctx context.Context, g footprint.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	return withTx(ctx, db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE id = ?`, g.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking goal id: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: goal %s", ErrDuplicateID, g.ID)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Title, g.Target, g.Current, g.Unit, g.Deadline.String(), g.Category, string(g.Status))
		if err != nil {
			return fmt.Errorf("inserting goal: %w", err)
		}
		return nil
	})
}

// GetGoal returns the goal with id.
func (s *SQLiteStore) GetGoal(ctx context.Context, id string) (footprint.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return footprint.Goal{}, err
	}
	g, err := scanGoal(db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return footprint.Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return g, err
}

// ListGoals returns all goals in insertion order.
func (s *SQLiteStore) ListGoals(ctx context.Context) ([]footprint.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []footprint.Goal
	for rows.Next() {
		g, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoal replaces the goal with g's id.
func (s *SQLiteStore) UpdateGoal(ctx context.Context, g footprint.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE goals SET title = ?, target = ?, current = ?, unit = ?, deadline = ?, category = ?, status = ?
		WHERE id = ?`,
		g.Title, g.Target, g.Current, g.Unit, g.Deadline.String(), g.Category, string(g.Status), g.ID)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return requireAffected(res, ErrGoalNotFound, g.ID)
}

// DeleteGoal removes the goal with id.
func (s *SQLiteStore) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return requireAffected(res, ErrGoalNotFound, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (footprint.Entry, error) {
	var (
		e        footprint.Entry
		date     string
		category string
	)
	err := row.Scan(&e.ID, &date, &category, &e.Subcategory, &e.Amount, &e.Unit, &e.CarbonFootprint, &e.Description)
	if err != nil {
		return footprint.Entry{}, err
	}
	if e.Date, err = footprint.ParseDate(date); err != nil {
		return footprint.Entry{}, fmt.Errorf("%w: entry %s: %w", ErrStoreCorrupted, e.ID, err)
	}
	if e.Category, err = footprint.ParseCategory(category); err != nil {
		return footprint.Entry{}, fmt.Errorf("%w: entry %s: %w", ErrStoreCorrupted, e.ID, err)
	}
	return e, nil
}

func scanGoal(row rowScanner) (footprint.Goal, error) {
	var (
		g        footprint.Goal
		deadline string
		status   string
	)
	err := row.Scan(&g.ID, &g.Title, &g.Target, &g.Current, &g.Unit, &deadline, &g.Category, &status)
	if err != nil {
		return footprint.Goal{}, err
	}
	if g.Deadline, err = footprint.ParseDate(deadline); err != nil {
		return footprint.Goal{}, fmt.Errorf("%w: goal %s: %w", ErrStoreCorrupted, g.ID, err)
	}
	g.Status = footprint.GoalStatus(status)
	return g, nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, e footprint.Entry) error {
	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE id = ?`, e.ID).Scan(&exists); err != nil {
		return fmt.Errorf("checking entry id: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: entry %s", ErrDuplicateID, e.ID)
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date.String(), e.Category.String(), e.Subcategory, e.Amount, e.Unit, e.CarbonFootprint, e.Description)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func requireAffected(res sql.Result, notFound error, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
