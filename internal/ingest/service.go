// Package ingest accepts telemetry submissions from the HTTP and MQTT
// transports, persists them, and triggers score recomputation.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mattergrade/mattergrade-core/internal/scoring"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// Logger is the minimal logging interface the service needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Store persists the parts of a submission the service writes.
// *telemetry.SQLiteRepository satisfies it.
type Store interface {
	UpsertDevice(ctx context.Context, dev telemetry.Device) error
	SaveVersion(ctx context.Context, v telemetry.Version) error
}

// Scorer recomputes a device's cached score after new telemetry lands.
type Scorer interface {
	UpdateDeviceScore(ctx context.Context, deviceID string) (*scoring.DeviceScore, error)
}

// Service handles incoming telemetry submissions.
type Service struct {
	store  Store
	scorer Scorer
	logger Logger
}

// NewService creates an ingest service.
func NewService(store Store, scorer Scorer, logger Logger) *Service {
	return &Service{store: store, scorer: scorer, logger: logger}
}

// HandleSubmission persists a submission and recomputes the device's
// score. A submission without a device id is assigned a fresh one,
// which is returned so the collector can reuse it. Scoring failures are
// logged but do not fail the ingest: the observation is already
// persisted and a later rebuild will converge the cache.
func (s *Service) HandleSubmission(ctx context.Context, sub telemetry.Submission) (string, error) {
	if len(sub.Endpoints) == 0 {
		return "", telemetry.ErrNoEndpoints
	}

	deviceID := sub.DeviceID
	if deviceID == "" {
		deviceID = uuid.New().String()
	}

	if err := s.store.UpsertDevice(ctx, telemetry.Device{
		ID:      deviceID,
		Name:    sub.Name,
		Vendor:  sub.Vendor,
		Product: sub.Product,
	}); err != nil {
		return "", fmt.Errorf("persisting device: %w", err)
	}

	reported := sub.ReportedAt
	if reported.IsZero() {
		reported = time.Now().UTC()
	}
	if err := s.store.SaveVersion(ctx, telemetry.Version{
		DeviceID:        deviceID,
		HardwareVersion: sub.HardwareVersion,
		SoftwareVersion: sub.SoftwareVersion,
		Endpoints:       sub.Endpoints,
		ReportedAt:      reported,
	}); err != nil {
		return "", fmt.Errorf("persisting version: %w", err)
	}

	if _, err := s.scorer.UpdateDeviceScore(ctx, deviceID); err != nil {
		s.logger.Error("score recompute after ingest failed", "device_id", deviceID, "error", err)
	} else {
		s.logger.Info("telemetry ingested", "device_id", deviceID,
			"hardware_version", sub.HardwareVersion, "software_version", sub.SoftwareVersion,
			"endpoints", len(sub.Endpoints))
	}

	return deviceID, nil
}
