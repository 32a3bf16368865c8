package capability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DefinitionStore supplies synced capability definitions layered over
// the built-in catalogue.
type DefinitionStore interface {
	ListDefinitions(ctx context.Context) ([]Definition, error)
}

// SQLiteStore persists synced capability definition rows. Each row
// stores the full definition as JSON keyed by the capability key.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a capability definition store backed by the given database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListDefinitions returns all synced capability definitions, ordered by key.
func (s *SQLiteStore) ListDefinitions(ctx context.Context) ([]Definition, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM capability_defs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("querying capability definitions: %w", err)
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning capability definition: %w", err)
		}
		var d Definition
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, fmt.Errorf("decoding capability definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// UpsertDefinition stores or replaces a synced capability definition.
func (s *SQLiteStore) UpsertDefinition(ctx context.Context, d Definition) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding capability definition: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO capability_defs (key, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, d.Key, doc, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting capability definition %s: %w", d.Key, err)
	}
	return nil
}

// LoadCatalog assembles the capability catalogue from the built-in
// definitions plus any synced rows. A synced row whose key matches a
// built-in entry replaces it in place, keeping catalogue order stable;
// new keys append in key order. A nil store yields the built-in
// catalogue unchanged.
func LoadCatalog(ctx context.Context, store DefinitionStore) ([]Definition, error) {
	catalog := DefaultCatalog()
	if store == nil {
		return catalog, nil
	}

	synced, err := store.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading synced capability definitions: %w", err)
	}

	index := make(map[string]int, len(catalog))
	for i, d := range catalog {
		index[d.Key] = i
	}
	for _, d := range synced {
		if i, ok := index[d.Key]; ok {
			catalog[i] = d
			continue
		}
		index[d.Key] = len(catalog)
		catalog = append(catalog, d)
	}
	return catalog, nil
}
