package api

import (
	"net/http"
	"strings"
)

// handleListScores returns cached scores for a comma-separated list of
// device ids. Devices with no cached score are absent from the result;
// callers render them as unscored.
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		writeBadRequest(w, "ids query parameter is required")
		return
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		writeBadRequest(w, "ids query parameter is empty")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"scores": s.scores.Scores(r.Context(), ids),
	})
}

// handleRebuildScores recomputes every device's cached score. The call
// is synchronous; rerunning it produces identical stored state.
func (s *Server) handleRebuildScores(w http.ResponseWriter, r *http.Request) {
	processed, err := s.scores.Rebuild(r.Context())
	if err != nil {
		s.logger.Error("score cache rebuild failed", "processed", processed, "error", err)
		writeInternalError(w, "score cache rebuild failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"processed": processed})
}
