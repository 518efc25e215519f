// Package cache persists resolved registries between runs so repeated
// invocations over an unchanged unit skip re-collection. The engine
// itself stays pure; the cache wraps it at the pipeline layer.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/quill/internal/modules"
	"github.com/funvibe/quill/internal/symbols"
)

const schema = `
CREATE TABLE IF NOT EXISTS resolved_tables (
	unit_id TEXT NOT NULL,
	module  TEXT NOT NULL,
	hash    TEXT NOT NULL,
	ord     INTEGER NOT NULL,
	entries BLOB NOT NULL,
	PRIMARY KEY (unit_id, module)
);`

// Store is a SQLite-backed cache of resolved registries. Snapshots are
// taken per unit and guarded by the unit's content fingerprint: a change
// to any module invalidates the whole snapshot. Only clean runs (no
// diagnostics) are cached, so a hit never has to replay diagnostics.
//
// The snapshot covers every registry key, including the synthetic entries
// published for qualified instances and import aliases; restoring it
// reproduces exactly the state a fresh resolution would have built.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening resolution cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing resolution cache: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PutUnit replaces the stored snapshot for a unit.
func (s *Store) PutUnit(unitID uuid.UUID, hash string, reg *modules.Registry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storing unit snapshot: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM resolved_tables WHERE unit_id = ?`, unitID.String()); err != nil {
		return fmt.Errorf("clearing unit snapshot: %w", err)
	}
	for ord, name := range reg.ModuleNames() {
		table, _ := reg.Lookup(name)
		blob, err := json.Marshal(table.Entries())
		if err != nil {
			return fmt.Errorf("encoding table for %q: %w", name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO resolved_tables (unit_id, module, hash, ord, entries) VALUES (?, ?, ?, ?, ?)`,
			unitID.String(), name, hash, ord, blob,
		); err != nil {
			return fmt.Errorf("storing table for %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// GetUnit restores the registry snapshot for a unit if its fingerprint
// still matches. A stale, missing or unreadable snapshot is a miss, not
// an error.
func (s *Store) GetUnit(unitID uuid.UUID, hash string) (*modules.Registry, bool, error) {
	rows, err := s.db.Query(
		`SELECT module, hash, entries FROM resolved_tables WHERE unit_id = ? ORDER BY ord`,
		unitID.String(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("loading unit snapshot: %w", err)
	}
	defer rows.Close()

	reg := modules.NewRegistry()
	found := false
	for rows.Next() {
		var module, storedHash string
		var blob []byte
		if err := rows.Scan(&module, &storedHash, &blob); err != nil {
			return nil, false, fmt.Errorf("loading unit snapshot: %w", err)
		}
		if storedHash != hash {
			return nil, false, nil
		}
		var entries []symbols.Entry
		if err := json.Unmarshal(blob, &entries); err != nil {
			// Corrupt row: treat the whole snapshot as a miss.
			return nil, false, nil
		}
		reg.Register(module, symbols.TableFromEntries(entries))
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("loading unit snapshot: %w", err)
	}
	return reg, found, nil
}
