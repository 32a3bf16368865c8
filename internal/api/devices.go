package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mattergrade/mattergrade-core/internal/scorecache"
	"github.com/mattergrade/mattergrade-core/internal/scoring"
	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// handleGetDeviceScore returns one device's cached score.
func (s *Server) handleGetDeviceScore(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "id")

	score, err := s.scores.Score(r.Context(), deviceID)
	if errors.Is(err, scorecache.ErrNotScored) {
		writeNotFound(w, "device not scored")
		return
	}
	if err != nil {
		s.logger.Error("score lookup failed", "device_id", deviceID, "error", err)
		writeInternalError(w, "failed to load score")
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// handleGetDeviceCapabilities runs capability detection against the
// device's latest observed version.
func (s *Server) handleGetDeviceCapabilities(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "id")

	latest, err := s.telemetry.LatestVersion(r.Context(), deviceID)
	if errors.Is(err, telemetry.ErrVersionNotFound) {
		writeNotFound(w, "no observations for device")
		return
	}
	if err != nil {
		s.logger.Error("version lookup failed", "device_id", deviceID, "error", err)
		writeInternalError(w, "failed to load observations")
		return
	}

	writeJSON(w, http.StatusOK, s.detector.Detect(latest.Endpoints))
}

// handleGetDeviceVersions lists a device's stored versions and the
// evaluation comparing the latest against the best in history.
func (s *Server) handleGetDeviceVersions(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "id")

	versions, err := s.telemetry.ListVersions(r.Context(), deviceID)
	if err != nil {
		s.logger.Error("version listing failed", "device_id", deviceID, "error", err)
		writeInternalError(w, "failed to load versions")
		return
	}
	if len(versions) == 0 {
		writeNotFound(w, "no observations for device")
		return
	}

	labels := make([]string, len(versions))
	for i, v := range versions {
		labels[i] = v.Label()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"versions":   labels,
		"evaluation": scoring.EvaluateVersions(s.registry, versions),
	})
}
