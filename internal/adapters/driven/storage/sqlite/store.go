package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gradebook/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// dbFileName is the database file created in the data directory.
const dbFileName = "gradebook.db"

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is a SQLite-backed record store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, the current working directory is used.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
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

// Location describes where records of the kind are stored.
func (s *Store) Location(kind domain.Kind) string {
	return s.path + "#" + kind.Plural()
}

// Load reads the lines saved for a kind in position order.
// Malformed lines are skipped with a warning and reported in the result.
func (s *Store) Load(ctx context.Context, kind domain.Kind) (domain.LoadResult, error) {
	if !kind.IsValid() {
		return domain.LoadResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}

	var saved int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kinds_saved WHERE kind = ?", string(kind)).Scan(&saved)
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("%w: reading %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}
	if saved == 0 {
		return domain.LoadResult{}, fmt.Errorf("%w: no %s saved in %s", domain.ErrStoreUnavailable, kind.Plural(), s.path)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT position, line FROM records WHERE kind = ? ORDER BY position", string(kind))
	if err != nil {
		return domain.LoadResult{}, fmt.Errorf("querying %s: %w", kind.Plural(), err)
	}
	defer rows.Close()

	var result domain.LoadResult
	for rows.Next() {
		var position int
		var line string
		if err := rows.Scan(&position, &line); err != nil {
			return domain.LoadResult{}, fmt.Errorf("scanning %s: %w", kind.Plural(), err)
		}
		r, err := domain.DecodeRecord(kind, line)
		if err != nil {
			logger.Warn("%s row %d skipped: %v", s.Location(kind), position, err)
			result.Skipped = append(result.Skipped, domain.SkippedLine{Number: position, Err: err})
			continue
		}
		result.Records = append(result.Records, r)
	}
	if err := rows.Err(); err != nil {
		return domain.LoadResult{}, fmt.Errorf("iterating %s: %w", kind.Plural(), err)
	}

	logger.Debug("read %d %s from %s", len(result.Records), kind.Plural(), s.path)
	return result, nil
}

// Save replaces every row of the kind with the matching records
// in a single transaction.
func (s *Store) Save(ctx context.Context, kind domain.Kind, records []domain.Record) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE kind = ?", string(kind)); err != nil {
		return fmt.Errorf("clearing %s: %w", kind.Plural(), err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO records (kind, position, line) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	position := 0
	for _, r := range records {
		if r.Kind != kind {
			continue
		}
		position++
		if _, err := stmt.ExecContext(ctx, string(kind), position, r.Encode()); err != nil {
			return fmt.Errorf("saving %s %s: %w", kind, r.ID(), err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO kinds_saved (kind, saved_at) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET saved_at = excluded.saved_at
	`, string(kind), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("marking %s saved: %w", kind.Plural(), err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Lines returns the stored lines for a kind in position order.
func (s *Store) Lines(ctx context.Context, kind domain.Kind) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT line FROM records WHERE kind = ? ORDER BY position", string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", kind.Plural(), err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind.Plural(), err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_records.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
