package api

import "net/http"

// handleListDeviceTypes returns the full device type catalogue in
// registry iteration order.
func (s *Server) handleListDeviceTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"deviceTypes": s.registry.DeviceTypes(),
	})
}

// handleListClusters returns the full cluster catalogue in registry
// iteration order.
func (s *Server) handleListClusters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"clusters": s.registry.Clusters(),
	})
}
