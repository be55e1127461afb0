package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	migrations := fstest.MapFS{
		"001_init.sql":  {Data: []byte(`CREATE TABLE things (id TEXT PRIMARY KEY);`)},
		"002_extra.sql": {Data: []byte(`ALTER TABLE things ADD COLUMN note TEXT NOT NULL DEFAULT '';`)},
		"README.md":     {Data: []byte("ignored")},
	}
	r := NewRunner(db, migrations)

	v, err := r.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, v)

	n, err := r.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, err = r.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	n, err = r.Apply(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second apply is a no-op")

	_, err = db.ExecContext(ctx, `INSERT INTO things (id, note) VALUES ('a', 'b')`)
	require.NoError(t, err)
	require.NoError(t, r.Validate(ctx))
}

func TestApplyRejectsNewerSchema(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := NewRunner(db, fstest.MapFS{"001_init.sql": {Data: []byte(`CREATE TABLE t (id TEXT);`)}})
	_, err := r.Apply(ctx)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE schema_version SET version = 9`)
	require.NoError(t, err)

	_, err = r.Apply(ctx)
	require.ErrorIs(t, err, ErrSchemaTooNew)
	require.ErrorIs(t, r.Validate(ctx), ErrSchemaTooNew)
}

func TestMigrationsBadNames(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{name: "no underscore", fs: fstest.MapFS{"001.sql": {Data: []byte("")}}},
		{name: "not a number", fs: fstest.MapFS{"abc_init.sql": {Data: []byte("")}}},
		{name: "zero", fs: fstest.MapFS{"000_init.sql": {Data: []byte("")}}},
		{name: "duplicate", fs: fstest.MapFS{
			"001_a.sql": {Data: []byte("")},
			"1_b.sql":   {Data: []byte("")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, tt.fs).Migrations()
			assert.Error(t, err)
		})
	}
}
