package spec

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteStore persists synced specification rows. Each row stores the
// full spec document as JSON keyed by id; the registry deserialises the
// document on load.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a specification store backed by the given database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListDeviceTypes returns all synced device type specs.
func (s *SQLiteStore) ListDeviceTypes(ctx context.Context) ([]DeviceTypeSpec, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM spec_device_types`)
	if err != nil {
		return nil, fmt.Errorf("querying device type specs: %w", err)
	}
	defer rows.Close()

	var specs []DeviceTypeSpec
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning device type spec: %w", err)
		}
		var dt DeviceTypeSpec
		if err := json.Unmarshal(doc, &dt); err != nil {
			return nil, fmt.Errorf("decoding device type spec: %w", err)
		}
		specs = append(specs, dt)
	}
	return specs, rows.Err()
}

// ListClusters returns all synced cluster specs.
func (s *SQLiteStore) ListClusters(ctx context.Context) ([]ClusterSpec, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM spec_clusters`)
	if err != nil {
		return nil, fmt.Errorf("querying cluster specs: %w", err)
	}
	defer rows.Close()

	var specs []ClusterSpec
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning cluster spec: %w", err)
		}
		var c ClusterSpec
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("decoding cluster spec: %w", err)
		}
		specs = append(specs, c)
	}
	return specs, rows.Err()
}

// UpsertDeviceType stores or replaces a synced device type spec.
func (s *SQLiteStore) UpsertDeviceType(ctx context.Context, dt DeviceTypeSpec) error {
	doc, err := json.Marshal(dt)
	if err != nil {
		return fmt.Errorf("encoding device type spec: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO spec_device_types (id, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, int64(dt.ID), doc, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting device type spec %s: %w", dt.ID.Hex(), err)
	}
	return nil
}

// UpsertCluster stores or replaces a synced cluster spec.
func (s *SQLiteStore) UpsertCluster(ctx context.Context, c ClusterSpec) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding cluster spec: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO spec_clusters (id, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, int64(c.ID), doc, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting cluster spec %s: %w", c.ID.Hex(), err)
	}
	return nil
}
