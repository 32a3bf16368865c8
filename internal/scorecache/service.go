package scorecache

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattergrade/mattergrade-core/internal/scoring"
	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

const defaultBatchSize = 100

// Logger is the minimal logging interface the service needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// VersionSource supplies the observation data a recompute needs.
// *telemetry.SQLiteRepository satisfies it.
type VersionSource interface {
	LatestVersion(ctx context.Context, deviceID string) (*telemetry.Version, error)
	ListVersions(ctx context.Context, deviceID string) ([]telemetry.Version, error)
	ListDeviceIDs(ctx context.Context, offset, limit int) ([]string, error)
}

// HistoryWriter receives score datapoints for time-series retention.
// Implementations must not block; failures are the writer's problem.
type HistoryWriter interface {
	WriteDeviceScore(deviceID string, score float64, stars int, compliant bool)
}

// Service orchestrates score recomputation and cache maintenance.
type Service struct {
	registry  *spec.Registry
	versions  VersionSource
	cache     Repository
	history   HistoryWriter
	batchSize int
	logger    Logger
}

// NewService creates a score cache service. batchSize bounds how many
// devices a rebuild loads per page; zero or negative uses the default.
func NewService(registry *spec.Registry, versions VersionSource, cache Repository, batchSize int, logger Logger) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Service{
		registry:  registry,
		versions:  versions,
		cache:     cache,
		batchSize: batchSize,
		logger:    logger,
	}
}

// SetHistoryWriter attaches an optional time-series sink for score
// datapoints. Call before the service starts handling recomputes.
func (s *Service) SetHistoryWriter(w HistoryWriter) {
	s.history = w
}

// UpdateDeviceScore recomputes one device's score from its latest
// stored version and upserts the cache row. When the device has no
// versions or its latest version has no endpoints the cache entry is
// deleted instead: an unobservable device is unscored, not zero-scored.
// Returns the new score, or nil when the entry was removed.
func (s *Service) UpdateDeviceScore(ctx context.Context, deviceID string) (*scoring.DeviceScore, error) {
	latest, err := s.versions.LatestVersion(ctx, deviceID)
	if errors.Is(err, telemetry.ErrVersionNotFound) {
		return nil, s.removeEntry(ctx, deviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest version for device %s: %w", deviceID, err)
	}
	if len(latest.Endpoints) == 0 {
		return nil, s.removeEntry(ctx, deviceID)
	}

	score := scoring.AggregateDevice(s.registry, deviceID, latest.Endpoints)

	if versions, err := s.versions.ListVersions(ctx, deviceID); err != nil {
		// History is advisory; the current score still stands.
		s.logger.Warn("listing versions for recommendation failed", "device_id", deviceID, "error", err)
	} else if eval := scoring.EvaluateVersions(s.registry, versions); eval.Recommended {
		best := eval.Best.Version
		score.BestVersion = &best
	}

	if err := s.cache.Upsert(ctx, score); err != nil {
		return nil, fmt.Errorf("caching score for device %s: %w", deviceID, err)
	}
	if s.history != nil {
		s.history.WriteDeviceScore(deviceID, score.Score, score.Stars, score.Compliant)
	}
	return &score, nil
}

func (s *Service) removeEntry(ctx context.Context, deviceID string) error {
	if err := s.cache.Delete(ctx, deviceID); err != nil {
		return fmt.Errorf("removing score for device %s: %w", deviceID, err)
	}
	return nil
}

// Rebuild recomputes every known device's cache entry in bounded
// batches and returns the number of devices processed. Re-running a
// rebuild is safe: each pass writes the same derived state, and a
// partial run leaves earlier rows valid if stale.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	processed := 0
	for offset := 0; ; offset += s.batchSize {
		ids, err := s.versions.ListDeviceIDs(ctx, offset, s.batchSize)
		if err != nil {
			return processed, fmt.Errorf("listing devices at offset %d: %w", offset, err)
		}
		if len(ids) == 0 {
			break
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return processed, err
			}
			if _, err := s.UpdateDeviceScore(ctx, id); err != nil {
				// One bad device must not abort the fleet.
				s.logger.Error("rebuild: recompute failed", "device_id", id, "error", err)
				continue
			}
			processed++
		}
		if len(ids) < s.batchSize {
			break
		}
	}
	s.logger.Info("score cache rebuild complete", "processed", processed)
	return processed, nil
}

// Scores returns cached scores for the given device ids. A failing
// cache read degrades to an empty result: callers render missing
// entries as "unscored", which is recoverable, while a propagated error
// would take the whole listing down.
func (s *Service) Scores(ctx context.Context, deviceIDs []string) map[string]scoring.DeviceScore {
	scores, err := s.cache.GetBulk(ctx, deviceIDs)
	if err != nil {
		s.logger.Error("bulk score lookup failed", "count", len(deviceIDs), "error", err)
		return map[string]scoring.DeviceScore{}
	}
	return scores
}

// Score returns one device's cached score, or ErrNotScored.
func (s *Service) Score(ctx context.Context, deviceID string) (*scoring.DeviceScore, error) {
	return s.cache.Get(ctx, deviceID)
}
