package scorecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattergrade/mattergrade-core/internal/scoring"
)

// ErrNotScored indicates no cached score exists for a device.
var ErrNotScored = errors.New("scorecache: device not scored")

// Repository persists cached device scores.
type Repository interface {
	// Upsert stores or replaces the cached score for a device.
	Upsert(ctx context.Context, score scoring.DeviceScore) error

	// Delete removes a device's cached score. Deleting a missing row
	// is not an error.
	Delete(ctx context.Context, deviceID string) error

	// Get returns the cached score for one device, or ErrNotScored.
	Get(ctx context.Context, deviceID string) (*scoring.DeviceScore, error)

	// GetBulk returns cached scores for the given ids. Missing ids are
	// simply absent from the result.
	GetBulk(ctx context.Context, deviceIDs []string) (map[string]scoring.DeviceScore, error)
}

// SQLiteRepository is the SQLite-backed Repository. The full score
// document is stored as JSON alongside the headline columns so bulk
// listings can read the columns without decoding.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository backed by the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, score scoring.DeviceScore) error {
	doc, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("encoding score for device %s: %w", score.DeviceID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO device_scores (device_id, score, stars, compliant, doc, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(device_id) DO UPDATE SET
			score = excluded.score,
			stars = excluded.stars,
			compliant = excluded.compliant,
			doc = excluded.doc,
			updated_at = excluded.updated_at
	`, score.DeviceID, score.Score, score.Stars, score.Compliant, doc, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting score for device %s: %w", score.DeviceID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, deviceID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM device_scores WHERE device_id = ?`, deviceID); err != nil {
		return fmt.Errorf("deleting score for device %s: %w", deviceID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, deviceID string) (*scoring.DeviceScore, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM device_scores WHERE device_id = ?`, deviceID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotScored
	}
	if err != nil {
		return nil, fmt.Errorf("querying score for device %s: %w", deviceID, err)
	}
	var score scoring.DeviceScore
	if err := json.Unmarshal(doc, &score); err != nil {
		return nil, fmt.Errorf("decoding score for device %s: %w", deviceID, err)
	}
	return &score, nil
}

func (r *SQLiteRepository) GetBulk(ctx context.Context, deviceIDs []string) (map[string]scoring.DeviceScore, error) {
	if len(deviceIDs) == 0 {
		return map[string]scoring.DeviceScore{}, nil
	}

	placeholders := strings.Repeat("?,", len(deviceIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(deviceIDs))
	for i, id := range deviceIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT device_id, doc FROM device_scores WHERE device_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]scoring.DeviceScore, len(deviceIDs))
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scanning score row: %w", err)
		}
		var score scoring.DeviceScore
		if err := json.Unmarshal(doc, &score); err != nil {
			return nil, fmt.Errorf("decoding score for device %s: %w", id, err)
		}
		scores[id] = score
	}
	return scores, rows.Err()
}
