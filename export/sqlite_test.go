package export_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/spendlog/category"
	"github.com/robinvdvleuten/spendlog/export"
	"github.com/robinvdvleuten/spendlog/ledger"
)

func TestExportSnapshot(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "spendlog.db")

	db, err := export.OpenSQLite(ctx, dbPath, zerolog.Nop())
	assert.NoError(t, err)
	defer db.Close()

	l := ledger.New(category.Default(), 1000)
	_, errs := l.Add("food meal -120, income salary 3000")
	assert.Equal(t, 0, len(errs))

	id, err := db.Export(ctx, "records.txt", l)
	assert.NoError(t, err)

	snap, err := db.Snapshot(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "records.txt", snap.Source)
	assert.Equal(t, int64(1000), snap.Balance)
	assert.Equal(t, int64(3880), snap.Current)
	assert.Equal(t, l.Records(), snap.Records)
}

func TestExportKeepsEarlierSnapshots(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "spendlog.db")

	db, err := export.OpenSQLite(ctx, dbPath, zerolog.Nop())
	assert.NoError(t, err)

	l := ledger.New(category.Default(), 0)
	first, err := db.Export(ctx, "records.txt", l)
	assert.NoError(t, err)

	_, errs := l.Add("bonus q4 250")
	assert.Equal(t, 0, len(errs))
	second, err := db.Export(ctx, "records.txt", l)
	assert.NoError(t, err)
	assert.NoError(t, db.Close())

	// Reopening runs migrations again without touching data.
	db, err = export.OpenSQLite(ctx, dbPath, zerolog.Nop())
	assert.NoError(t, err)
	defer db.Close()

	snap, err := db.Snapshot(ctx, first)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(snap.Records))

	snap, err = db.Snapshot(ctx, second)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(snap.Records))
}

func TestSnapshotNotFound(t *testing.T) {
	ctx := context.Background()
	db, err := export.OpenSQLite(ctx, filepath.Join(t.TempDir(), "spendlog.db"), zerolog.Nop())
	assert.NoError(t, err)
	defer db.Close()

	_, err = db.Snapshot(ctx, 42)
	assert.IsError(t, err, sql.ErrNoRows)
}
