package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository persists devices and their version snapshots.
type Repository interface {
	// UpsertDevice creates the device or refreshes its descriptive fields.
	UpsertDevice(ctx context.Context, dev Device) error

	// GetDevice returns a device by id, or ErrDeviceNotFound.
	GetDevice(ctx context.Context, deviceID string) (*Device, error)

	// SaveVersion stores a version snapshot. A resubmission of an
	// existing hardware/software pair replaces the stored endpoints and
	// reported time rather than creating a duplicate row.
	SaveVersion(ctx context.Context, v Version) error

	// LatestVersion returns the most recently reported version for a
	// device, or ErrVersionNotFound when none exist.
	LatestVersion(ctx context.Context, deviceID string) (*Version, error)

	// ListVersions returns all stored versions for a device ordered by
	// reported time ascending.
	ListVersions(ctx context.Context, deviceID string) ([]Version, error)

	// ListDeviceIDs returns a stable page of known device ids, for
	// batched walks over the whole fleet.
	ListDeviceIDs(ctx context.Context, offset, limit int) ([]string, error)
}

// SQLiteRepository is the SQLite-backed Repository.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository backed by the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertDevice(ctx context.Context, dev Device) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO devices (id, name, vendor, product, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE devices.name END,
			vendor = CASE WHEN excluded.vendor != '' THEN excluded.vendor ELSE devices.vendor END,
			product = CASE WHEN excluded.product != '' THEN excluded.product ELSE devices.product END,
			updated_at = excluded.updated_at
	`, dev.ID, dev.Name, dev.Vendor, dev.Product, now, now)
	if err != nil {
		return fmt.Errorf("upserting device %s: %w", dev.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetDevice(ctx context.Context, deviceID string) (*Device, error) {
	var (
		dev                  Device
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, vendor, product, created_at, updated_at
		FROM devices WHERE id = ?
	`, deviceID).Scan(&dev.ID, &dev.Name, &dev.Vendor, &dev.Product, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying device %s: %w", deviceID, err)
	}
	dev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	dev.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &dev, nil
}

func (r *SQLiteRepository) SaveVersion(ctx context.Context, v Version) error {
	endpoints, err := json.Marshal(v.Endpoints)
	if err != nil {
		return fmt.Errorf("encoding endpoints for device %s: %w", v.DeviceID, err)
	}
	reported := v.ReportedAt
	if reported.IsZero() {
		reported = time.Now().UTC()
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO device_versions (device_id, hardware_version, software_version, endpoints, reported_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(device_id, hardware_version, software_version) DO UPDATE SET
			endpoints = excluded.endpoints,
			reported_at = excluded.reported_at
	`, v.DeviceID, v.HardwareVersion, v.SoftwareVersion, endpoints, reported.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving version %s for device %s: %w", v.Label(), v.DeviceID, err)
	}
	return nil
}

func (r *SQLiteRepository) LatestVersion(ctx context.Context, deviceID string) (*Version, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, device_id, hardware_version, software_version, endpoints, reported_at
		FROM device_versions
		WHERE device_id = ?
		ORDER BY reported_at DESC, id DESC
		LIMIT 1
	`, deviceID)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest version for device %s: %w", deviceID, err)
	}
	return v, nil
}

func (r *SQLiteRepository) ListVersions(ctx context.Context, deviceID string) ([]Version, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, device_id, hardware_version, software_version, endpoints, reported_at
		FROM device_versions
		WHERE device_id = ?
		ORDER BY reported_at ASC, id ASC
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("querying versions for device %s: %w", deviceID, err)
	}
	defer rows.Close()

	var versions []Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning version for device %s: %w", deviceID, err)
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func (r *SQLiteRepository) ListDeviceIDs(ctx context.Context, offset, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM devices ORDER BY id LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing device ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning device id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*Version, error) {
	var (
		v         Version
		endpoints []byte
		reported  string
	)
	if err := row.Scan(&v.ID, &v.DeviceID, &v.HardwareVersion, &v.SoftwareVersion, &endpoints, &reported); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(endpoints, &v.Endpoints); err != nil {
		return nil, fmt.Errorf("decoding endpoints: %w", err)
	}
	v.ReportedAt, _ = time.Parse(time.RFC3339, reported)
	return &v, nil
}
