package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mattergrade/mattergrade-core/internal/telemetry"
)

// handleSubmitTelemetry accepts a telemetry submission, persists it, and
// returns the device id (assigned if the submission carried none) with
// the freshly computed score when one exists.
func (s *Server) handleSubmitTelemetry(w http.ResponseWriter, r *http.Request) {
	if s.ingest == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeInternal, "telemetry ingestion not configured")
		return
	}

	var sub telemetry.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeBadRequest(w, "invalid telemetry payload: "+err.Error())
		return
	}

	deviceID, err := s.ingest.HandleSubmission(r.Context(), sub)
	if errors.Is(err, telemetry.ErrNoEndpoints) {
		writeBadRequest(w, "submission has no endpoints")
		return
	}
	if err != nil {
		s.logger.Error("telemetry ingest failed", "device_id", sub.DeviceID, "error", err)
		writeInternalError(w, "failed to ingest telemetry")
		return
	}

	resp := map[string]any{"deviceId": deviceID}
	if score, err := s.scores.Score(r.Context(), deviceID); err == nil {
		resp["score"] = score
	}
	writeJSON(w, http.StatusAccepted, resp)
}
