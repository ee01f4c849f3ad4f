// Package export copies ledgers into a SQLite database for querying with
// other tools. Every export is a new snapshot; earlier snapshots are kept.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/robinvdvleuten/spendlog/ledger"
	"github.com/robinvdvleuten/spendlog/telemetry"
)

// SQLite is an export database.
type SQLite struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Snapshot is a ledger as it was exported.
type Snapshot struct {
	ID      int64
	Source  string
	Balance int64
	Current int64
	Records []ledger.Record
}

// OpenSQLite opens or creates the database at dbPath and migrates it.
func OpenSQLite(ctx context.Context, dbPath string, logger zerolog.Logger) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Export stores l as a new snapshot of source and returns its ID.
func (s *SQLite) Export(ctx context.Context, source string, l *ledger.Ledger) (int64, error) {
	timer := telemetry.FromContext(ctx).Start("export.sqlite")
	defer timer.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source, balance, current) VALUES (?, ?, ?)`,
		source, l.Balance(), l.Current())
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (snapshot_id, position, category, description, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	insertTimer := timer.Child("export.records")
	for i, r := range l.Records() {
		if _, err := stmt.ExecContext(ctx, id, i, r.Category, r.Description, r.Amount); err != nil {
			insertTimer.End()
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	insertTimer.End()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}

	s.logger.Info().
		Int64("snapshot", id).
		Str("source", source).
		Int("records", l.Len()).
		Msg("exported ledger")

	return id, nil
}

// Snapshot reads back a stored snapshot.
func (s *SQLite) Snapshot(ctx context.Context, id int64) (*Snapshot, error) {
	snap := &Snapshot{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT source, balance, current FROM snapshots WHERE id = ?`, id).
		Scan(&snap.Source, &snap.Balance, &snap.Current)
	if err != nil {
		return nil, fmt.Errorf("get snapshot %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, description, amount FROM records WHERE snapshot_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r ledger.Record
		if err := rows.Scan(&r.Category, &r.Description, &r.Amount); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		snap.Records = append(snap.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return snap, nil
}
