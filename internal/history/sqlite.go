// Package history persists the record of import operations so users can
// audit what was written into a store and when.
package history

import (
	"database/sql"
	"fmt"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/history/migrations"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteLedger implements the Ledger interface using SQLite.
type SQLiteLedger struct {
	db   *sql.DB
	path string
}

// NewSQLiteLedger opens (creating if necessary) the ledger database at path
// and migrates it to the latest schema version.
// path can be a file path or ":memory:" for an in-memory ledger.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating ledger database: %w", err)
	}

	return &SQLiteLedger{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with appropriate PRAGMAs.
// Exported for tools and tests that need a properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (l *SQLiteLedger) Record(rec *xgp.ImportRecord) error {
	res, err := l.db.Exec(
		`INSERT INTO imports (save_name, source, store, containers, status, dry_run, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SaveName, rec.Source, rec.Store, rec.Containers, rec.Status, rec.DryRun, rec.StartedAt, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading import record id: %w", err)
	}
	rec.ID = id
	return nil
}

func (l *SQLiteLedger) List(limit int) ([]*xgp.ImportRecord, error) {
	rows, err := l.db.Query(
		`SELECT id, save_name, source, store, containers, status, dry_run, started_at, finished_at
		 FROM imports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}
	defer rows.Close()

	var records []*xgp.ImportRecord
	for rows.Next() {
		rec := &xgp.ImportRecord{}
		if err := rows.Scan(&rec.ID, &rec.SaveName, &rec.Source, &rec.Store,
			&rec.Containers, &rec.Status, &rec.DryRun, &rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning import record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}
	return records, nil
}

// Path returns the ledger file path (or ":memory:" for in-memory ledgers).
func (l *SQLiteLedger) Path() string {
	return l.path
}

// CheckMigrations verifies the ledger schema is up-to-date.
func (l *SQLiteLedger) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(l.db)
}

// Close closes the database connection.
func (l *SQLiteLedger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteLedger implements the Ledger interface
var _ xgp.Ledger = (*SQLiteLedger)(nil)
