// MatterGrade Core - Device Compliance and Capability Scoring
//
// This is the main entry point for the MatterGrade Core service. It
// ingests smart-home device telemetry over HTTP and MQTT, compares what
// devices implement against the specification registry, and serves
// compliance scores, star ratings, and capability breakdowns over a
// REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattergrade/mattergrade-core/migrations"

	"github.com/mattergrade/mattergrade-core/internal/api"
	"github.com/mattergrade/mattergrade-core/internal/capability"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/config"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/database"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/influxdb"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/logging"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/mqtt"
	"github.com/mattergrade/mattergrade-core/internal/ingest"
	"github.com/mattergrade/mattergrade-core/internal/scorecache"
	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting MatterGrade Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Assemble the specification registry (seed catalogue + synced rows)
	specStore := spec.NewSQLiteStore(db.DB)
	registry, err := spec.Load(ctx, specStore, log)
	if err != nil {
		return fmt.Errorf("loading specification registry: %w", err)
	}
	log.Info("specification registry ready",
		"device_types", registry.DeviceTypeCount(),
		"clusters", registry.ClusterCount(),
	)

	// Capability catalogue (built-in definitions + synced overrides)
	catalog, err := capability.LoadCatalog(ctx, capability.NewSQLiteStore(db.DB))
	if err != nil {
		return fmt.Errorf("loading capability catalogue: %w", err)
	}
	log.Info("capability catalogue ready", "definitions", len(catalog))

	// Telemetry persistence and score services
	telemetryRepo := telemetry.NewSQLiteRepository(db.DB)
	scoreRepo := scorecache.NewSQLiteRepository(db.DB)
	scoreService := scorecache.NewService(registry, telemetryRepo, scoreRepo, cfg.Scoring.RebuildBatchSize, log)
	detector := capability.NewDetector(registry, catalog)
	ingestService := ingest.NewService(telemetryRepo, scoreService, log)

	// Connect to InfluxDB (optional score history sink)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		scoreService.SetHistoryWriter(influxClient)
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Connect to MQTT broker (optional telemetry transport)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		// QoS validated by config; safe to narrow
		consumer := ingest.NewConsumer(ingestService, mqttClient, scoreService, byte(cfg.MQTT.QoS), log)
		if err := consumer.Start(); err != nil {
			return fmt.Errorf("starting telemetry consumer: %w", err)
		}
	} else {
		log.Info("MQTT disabled")
	}

	// Start the HTTP API
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		Logger:    log,
		Registry:  registry,
		Ingest:    ingestService,
		Scores:    scoreService,
		Detector:  detector,
		Telemetry: telemetryRepo,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, server, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. MQTT (if enabled)
	// 3. InfluxDB (if enabled)
	// 4. Database

	log.Info("MatterGrade Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses MATTERGRADE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("MATTERGRADE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// mqttClient and influxClient may be nil when disabled.
func healthCheck(ctx context.Context, db *database.DB, server *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
