/*
Package sqlite provides a SQLite-backed store for rule-set configurations.

PURPOSE:
  Persists the JSON rule sets the engine evaluates against, so an
  administrator can load next year's thresholds, switch the active set,
  and survive restarts. Household answers and assessment results are
  never written here.

KEY TABLES:
  rule_sets:  Versioned rule-set configurations (JSON)
  settings:   Small key/value table (e.g., which rule set is active)

VERSIONING:
  Saving an existing rule-set ID replaces its JSON and bumps version.
  The created_at timestamp is kept from the first save.

CONCURRENCY:
  A sync.RWMutex serializes writers; reads share the lock.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/housing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  err = st.SaveRuleSet(ctx, store.RuleSetRecord{ID: "au-2025", ...})

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: RuleSetStore interface this implements
  - store/memory: In-memory implementation
  - factory/rules.go: JSON <-> housing.RuleSet
  - api/handlers.go: Rule-set administration endpoints
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/housing-engine/store"
)

var _ store.RuleSetStore = (*Store)(nil)

// Store implements rule-set persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	if strings.HasPrefix(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Rule sets (one row per published threshold table)
	CREATE TABLE IF NOT EXISTS rule_sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rule_sets_year
		ON rule_sets(year);

	-- Settings (active rule set, etc.)
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RULE SET STORE
// =============================================================================

// SaveRuleSet inserts a rule set or replaces an existing one, bumping its version.
func (s *Store) SaveRuleSet(ctx context.Context, rs store.RuleSetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO rule_sets (id, name, year, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			year = excluded.year,
			config_json = excluded.config_json,
			version = rule_sets.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query, rs.ID, rs.Name, rs.Year, rs.ConfigJSON, now, now)
	return err
}

// GetRuleSet retrieves a rule set by ID. Returns nil, nil if absent.
func (s *Store) GetRuleSet(ctx context.Context, id string) (*store.RuleSetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r store.RuleSetRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, year, config_json, version, created_at, updated_at FROM rule_sets WHERE id = ?",
		id,
	).Scan(&r.ID, &r.Name, &r.Year, &r.ConfigJSON, &r.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &r, nil
}

// ListRuleSets returns all rule sets, newest year first.
func (s *Store) ListRuleSets(ctx context.Context) ([]store.RuleSetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, year, config_json, version, created_at, updated_at FROM rule_sets ORDER BY year DESC, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []store.RuleSetRecord
	for rows.Next() {
		var r store.RuleSetRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Year, &r.ConfigJSON, &r.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRuleSet removes a rule set. Deleting an absent ID is not an error.
func (s *Store) DeleteRuleSet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM rule_sets WHERE id = ?", id)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

const settingActiveRuleSet = "active_rule_set"

// SetActiveRuleSet records which rule set the API evaluates against.
func (s *Store) SetActiveRuleSet(ctx context.Context, id string) error {
	return s.setSetting(ctx, settingActiveRuleSet, id)
}

// ActiveRuleSet returns the recorded active rule-set ID, or "" if none.
func (s *Store) ActiveRuleSet(ctx context.Context) (string, error) {
	return s.getSetting(ctx, settingActiveRuleSet)
}

func (s *Store) setSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) getSetting(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
