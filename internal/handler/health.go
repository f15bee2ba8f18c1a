package handler

import "net/http"

// health handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
// No envelope here: liveness probes want the smallest possible contract.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
