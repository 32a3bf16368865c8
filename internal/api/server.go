// Package api provides the HTTP REST API for MatterGrade Core.
//
// It exposes telemetry ingestion, device score and capability lookups,
// specification browsing, and score cache maintenance to collectors and
// user interfaces.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mattergrade/mattergrade-core/internal/capability"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/config"
	"github.com/mattergrade/mattergrade-core/internal/infrastructure/logging"
	"github.com/mattergrade/mattergrade-core/internal/ingest"
	"github.com/mattergrade/mattergrade-core/internal/scorecache"
	"github.com/mattergrade/mattergrade-core/internal/spec"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	Logger    *logging.Logger
	Registry  *spec.Registry
	Ingest    *ingest.Service
	Scores    *scorecache.Service
	Detector  *capability.Detector
	Telemetry telemetry.Repository
	Version   string
}

// Server is the HTTP API server for MatterGrade Core.
type Server struct {
	cfg       config.APIConfig
	logger    *logging.Logger
	registry  *spec.Registry
	ingest    *ingest.Service
	scores    *scorecache.Service
	detector  *capability.Detector
	telemetry telemetry.Repository
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("specification registry is required")
	}
	if deps.Scores == nil {
		return nil, fmt.Errorf("score service is required")
	}
	// Ingest is optional when telemetry arrives over MQTT only.

	return &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		registry:  deps.Registry,
		ingest:    deps.Ingest,
		scores:    deps.Scores,
		detector:  deps.Detector,
		telemetry: deps.Telemetry,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// The listener runs in a background goroutine; stop it with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server started", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
