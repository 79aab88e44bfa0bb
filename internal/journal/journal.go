// Package journal persists the processed-reference log: which notes were
// enriched, for which keys, against which organization. The refresh sweep
// replays these entries. The log is append/iterate only; entries are never
// mutated or deleted by the engine.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Entry records one processed note.
type Entry struct {
	Identifier string // stable note identifier
	Keys       string // comma-joined issue keys
	SecondOrg  bool   // which org context was used
	Timestamp  int64  // epoch milliseconds
}

// KeyList splits the comma-joined keys back into a slice.
func (e Entry) KeyList() []string {
	if e.Keys == "" {
		return nil
	}
	return strings.Split(e.Keys, ",")
}

// Store is the sqlite-backed journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database inside dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "journal.db"))
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS processed_refs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			identifier TEXT NOT NULL,
			keys TEXT NOT NULL,
			second_org INTEGER NOT NULL DEFAULT 0,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_processed_refs_identifier
			ON processed_refs(identifier)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("initialize journal schema: %w", err)
		}
	}

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)`,
		fmt.Sprintf("%d", schemaVersion),
	)
	if err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// Append records one processed note. A zero Timestamp is filled with the
// current time.
func (s *Store) Append(e Entry) error {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	_, err := s.db.Exec(
		`INSERT INTO processed_refs (identifier, keys, second_org, timestamp) VALUES (?, ?, ?, ?)`,
		e.Identifier, e.Keys, boolToInt(e.SecondOrg), e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// Entries returns every journal entry in insertion order.
func (s *Store) Entries() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT identifier, keys, second_org, timestamp FROM processed_refs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("read journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var second int
		if err := rows.Scan(&e.Identifier, &e.Keys, &second, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.SecondOrg = second != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Identifiers returns the distinct note identifiers in the journal, in
// first-appearance order. A sweep processes each note once even if it was
// journaled several times.
func (s *Store) Identifiers() ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	var ids []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Identifier] {
			continue
		}
		seen[e.Identifier] = true
		ids = append(ids, e.Identifier)
	}
	return ids, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
