// Package sqlitestore provides a SQLite-backed Storage Backend Port
// adapter (§4.2), adapted from the file-per-entity temporal-versioning
// pattern of a prior project's unified data layer: one table per raw
// document kind, a composite document store keyed by id, JSON-blob
// payloads decoded into store.RawDocument at read time.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/bce/pkg/bceerr"
	"github.com/kittclouds/bce/pkg/model"
	"github.com/kittclouds/bce/pkg/store"
)

// SQLiteStore is the SQLite-backed Storage Backend Port adapter.
// Thread-safe for concurrent readers; writes serialize through mu as
// the core's concurrency model requires (§5).
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS characters (
	id TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	doc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sources (
	source_id TEXT PRIMARY KEY,
	date_range TEXT,
	provenance TEXT,
	audience TEXT,
	depends_on TEXT
);
`

// Open creates or attaches to a SQLite database at path, applying the
// schema if it does not already exist.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to open sqlite database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to apply schema")
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ store.Port = (*SQLiteStore)(nil)

func (s *SQLiteStore) ListCharacterIDs() ([]model.EntityId, error) {
	return s.listIDs("characters")
}

func (s *SQLiteStore) ListEventIDs() ([]model.EntityId, error) {
	return s.listIDs("events")
}

func (s *SQLiteStore) listIDs(table string) ([]model.EntityId, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query("SELECT id FROM " + table + " ORDER BY id")
	if err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to list "+table)
	}
	defer rows.Close()
	var ids []model.EntityId
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, bceerr.Wrap(bceerr.Storage, err, "failed to scan id")
		}
		ids = append(ids, model.EntityId(id))
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) LoadCharacterRaw(id model.EntityId) (store.RawDocument, error) {
	return s.loadRaw("characters", id)
}

func (s *SQLiteStore) LoadEventRaw(id model.EntityId) (store.RawDocument, error) {
	return s.loadRaw("events", id)
}

func (s *SQLiteStore) loadRaw(table string, id model.EntityId) (store.RawDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var raw string
	err := s.db.QueryRow("SELECT doc FROM "+table+" WHERE id = ?", string(id)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, bceerr.New(bceerr.DataNotFound, "document not found").WithField(string(id), "", "")
	}
	if err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to load document")
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to decode document")
	}
	return store.RawDocument(doc), nil
}

func (s *SQLiteStore) SaveCharacterRaw(id model.EntityId, doc store.RawDocument) error {
	return s.saveRaw("characters", id, doc)
}

func (s *SQLiteStore) SaveEventRaw(id model.EntityId, doc store.RawDocument) error {
	return s.saveRaw("events", id, doc)
}

func (s *SQLiteStore) saveRaw(table string, id model.EntityId, doc store.RawDocument) error {
	raw, err := json.Marshal(map[string]any(doc))
	if err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to encode document")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT INTO "+table+" (id, doc) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET doc = excluded.doc",
		string(id), string(raw),
	)
	if err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to save document")
	}
	return nil
}

func (s *SQLiteStore) LoadSources() ([]model.SourceMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.Query("SELECT source_id, date_range, provenance, audience, depends_on FROM sources ORDER BY source_id")
	if err != nil {
		return nil, bceerr.Wrap(bceerr.Storage, err, "failed to load source registry")
	}
	defer rows.Close()
	var out []model.SourceMeta
	for rows.Next() {
		var id, dateRange, provenance, audience, dependsOn sql.NullString
		if err := rows.Scan(&id, &dateRange, &provenance, &audience, &dependsOn); err != nil {
			return nil, bceerr.Wrap(bceerr.Storage, err, "failed to scan source")
		}
		sm := model.SourceMeta{
			SourceId:   model.SourceId(id.String),
			DateRange:  dateRange.String,
			Provenance: provenance.String,
			Audience:   audience.String,
		}
		if dependsOn.String != "" {
			var deps []string
			if err := json.Unmarshal([]byte(dependsOn.String), &deps); err == nil {
				for _, d := range deps {
					sm.DependsOn = append(sm.DependsOn, model.SourceId(d))
				}
			}
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// SaveSource upserts a single source registry entry. Not part of the
// store.Port contract (the port is read-only for the registry per §3.5:
// "immutable to core components"); this is an adapter-specific
// administrative helper for seeding or reconfiguring the registry.
func (s *SQLiteStore) SaveSource(sm model.SourceMeta) error {
	deps, err := json.Marshal(sm.DependsOn)
	if err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to encode depends_on")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO sources (source_id, date_range, provenance, audience, depends_on)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_id) DO UPDATE SET
		   date_range = excluded.date_range,
		   provenance = excluded.provenance,
		   audience = excluded.audience,
		   depends_on = excluded.depends_on`,
		string(sm.SourceId), sm.DateRange, sm.Provenance, sm.Audience, string(deps),
	)
	if err != nil {
		return bceerr.Wrap(bceerr.Storage, err, "failed to save source")
	}
	return nil
}
