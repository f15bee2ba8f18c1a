package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the uniform response body for every endpoint:
// {"status": "success"|"error", "message": ..., "data": ...}.
// Data is always present in the JSON, null when there is nothing to return
// (e.g. after a delete).
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// writeJSON serializes v as the response body with the given status code.
// Encoding failures at this point cannot be reported to the client (the
// header is already written), so they are only logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondSuccess writes a 200 success envelope.
func respondSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: message, Data: data})
}

// respondError writes an error envelope with the given status code.
// Data is null on errors.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Status: "error", Message: message, Data: nil})
}
