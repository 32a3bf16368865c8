package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mattergrade/mattergrade-core/internal/infrastructure/mqtt"
	"github.com/mattergrade/mattergrade-core/internal/scoring"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// ScoreSource supplies the cached score published back after ingest.
type ScoreSource interface {
	Score(ctx context.Context, deviceID string) (*scoring.DeviceScore, error)
}

// Consumer bridges MQTT telemetry topics into the ingest service.
//
// Collectors publish submissions on mattergrade/telemetry/{collectorId};
// after a successful ingest the device's fresh score is published
// retained on mattergrade/scores/{deviceId} so dashboards that watch
// the broker see updates without polling the API.
type Consumer struct {
	service *Service
	client  *mqtt.Client
	scores  ScoreSource
	qos     byte
	logger  Logger
}

// NewConsumer creates an MQTT telemetry consumer. scores may be nil to
// disable score publication.
func NewConsumer(service *Service, client *mqtt.Client, scores ScoreSource, qos byte, logger Logger) *Consumer {
	return &Consumer{
		service: service,
		client:  client,
		scores:  scores,
		qos:     qos,
		logger:  logger,
	}
}

// Start subscribes to the telemetry wildcard topic.
func (c *Consumer) Start() error {
	topic := mqtt.Topics{}.AllTelemetry()
	if err := c.client.Subscribe(topic, c.qos, c.handleMessage); err != nil {
		return fmt.Errorf("subscribing to telemetry: %w", err)
	}
	c.logger.Info("MQTT telemetry consumer started", "topic", topic)
	return nil
}

// handleMessage parses and ingests one telemetry submission. Errors are
// returned to the client wrapper, which logs them; a malformed message
// is dropped rather than redelivered.
func (c *Consumer) handleMessage(topic string, payload []byte) error {
	var sub telemetry.Submission
	if err := json.Unmarshal(payload, &sub); err != nil {
		return fmt.Errorf("parsing telemetry from %s: %w", topic, err)
	}

	ctx := context.Background()
	deviceID, err := c.service.HandleSubmission(ctx, sub)
	if err != nil {
		return fmt.Errorf("ingesting telemetry from %s: %w", topic, err)
	}

	c.publishScore(ctx, deviceID)
	return nil
}

// publishScore pushes the device's cached score to its retained score
// topic. Best effort: a publish failure does not undo the ingest.
func (c *Consumer) publishScore(ctx context.Context, deviceID string) {
	if c.scores == nil {
		return
	}
	score, err := c.scores.Score(ctx, deviceID)
	if err != nil {
		return
	}
	payload, err := json.Marshal(score)
	if err != nil {
		return
	}
	if err := c.client.PublishRetained(mqtt.Topics{}.DeviceScore(deviceID), payload); err != nil {
		c.logger.Warn("publishing score failed", "device_id", deviceID, "error", err)
	}
}
