package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Every sub-store runs against a querier, so the same statements serve
// both auto-commit access and transaction-bound access.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// storeView exposes the sub-stores over one querier.
type storeView struct {
	q querier
}

// Documents returns a DocumentStore bound to this view.
func (v *storeView) Documents() driven.DocumentStore { return &documentStore{q: v.q} }

// Revisions returns a RevisionStore bound to this view.
func (v *storeView) Revisions() driven.RevisionStore { return &revisionStore{q: v.q} }

// Sections returns a SectionStore bound to this view.
func (v *storeView) Sections() driven.SectionStore { return &sectionStore{q: v.q} }

// Notes returns a NoteStore bound to this view.
func (v *storeView) Notes() driven.NoteStore { return &noteStore{q: v.q} }

// Reassignments returns a ReassignmentStore bound to this view.
func (v *storeView) Reassignments() driven.ReassignmentStore { return &reassignmentStore{q: v.q} }

// Provocations returns a ProvocationStore bound to this view.
func (v *storeView) Provocations() driven.ProvocationStore { return &provocationStore{q: v.q} }

// Store is the SQLite-backed workspace store. One workspace = one
// database file.
type Store struct {
	storeView
	db   *sql.DB
	path string
}

var _ driven.WorkspaceStore = (*Store)(nil)

// NewStore opens (creating if needed) the workspace store in dataDir.
// If dataDir is empty, defaults to ~/.lectern/data/workspace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lectern", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspace.db")

	// WAL for crash safety, busy timeout for the single-writer model
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		storeView: storeView{q: db},
		db:        db,
		path:      dbPath,
	}

	if err := s.migrateUp(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// InTransaction runs fn against a transaction-bound view of the store.
// The transaction commits iff fn returns nil.
func (s *Store) InTransaction(ctx context.Context, fn func(tx driven.WorkspaceStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	view := &txView{storeView{q: tx}}
	if err := fn(view); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// txView is a WorkspaceStore bound to one open transaction.
type txView struct {
	storeView
}

var _ driven.WorkspaceStore = (*txView)(nil)

// InTransaction on an already-open transaction joins it rather than
// nesting; SQLite has no real nested transactions.
func (v *txView) InTransaction(_ context.Context, fn func(tx driven.WorkspaceStore) error) error {
	return fn(v)
}

// ==================== Migrations ====================

// migrationVersion extracts the numeric prefix of a migration file
// name, e.g. "001_core.up.sql" -> 1.
func migrationVersion(name string) (int, bool) {
	var version int
	if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
		return 0, false
	}
	return version, true
}

// migrateUp applies all pending forward migrations in version order,
// recording each applied version in the ledger. Already-applied
// versions are skipped, so applying is idempotent.
func (s *Store) migrateUp(fsys embed.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	applied, err := s.appliedVersions()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		version, ok := migrationVersion(name)
		if !ok {
			continue
		}
		if applied[version] {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// MigrateDown rolls back the most recent applied migrations, newest
// first, running each version's reverse SQL and removing it from the
// ledger. steps < 0 rolls back everything.
func (s *Store) MigrateDown(steps int) error {
	applied, err := s.appliedVersions()
	if err != nil {
		return err
	}

	versions := make([]int, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	if steps >= 0 && steps < len(versions) {
		versions = versions[:steps]
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	downByVersion := make(map[int]string)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".down.sql") {
			continue
		}
		if v, ok := migrationVersion(entry.Name()); ok {
			downByVersion[v] = entry.Name()
		}
	}

	for _, version := range versions {
		name, ok := downByVersion[version]
		if !ok {
			return fmt.Errorf("no reverse migration for version %d", version)
		}
		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning rollback %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("executing rollback %s: %w", name, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("unrecording rollback %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing rollback %s: %w", name, err)
		}
	}

	return nil
}

// appliedVersions reads the migration ledger.
func (s *Store) appliedVersions() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning migration version: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migration versions: %w", err)
	}
	return applied, nil
}

// ==================== Helpers ====================

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
