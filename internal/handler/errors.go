package handler

import (
	"errors"
	"net/http"

	"github.com/fleetops/vehicle-allocation/internal/domain"
)

// errorTable is the single mapping from domain error kinds to HTTP responses.
// Order matters only in that each entry is checked with errors.Is; the kinds
// are mutually exclusive in practice. Every kind is a caller-input error in
// the 4xx class; anything not in the table is an internal error.
var errorTable = []struct {
	kind    error
	status  int
	message string
}{
	{domain.ErrConflict, http.StatusBadRequest, "vehicle already allocated for this date"},
	{domain.ErrInvalidDate, http.StatusBadRequest, "allocation date must be in the future"},
	{domain.ErrImmutable, http.StatusBadRequest, "cannot modify past allocations"},
	{domain.ErrNotFound, http.StatusNotFound, "allocation not found"},
}

// respondServiceError maps a service-layer error onto the envelope via
// errorTable. Unknown errors are logged with the request context and surfaced
// as a generic 500 so internal detail never leaks to the client.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.kind) {
			respondError(w, e.status, e.message)
			return
		}
	}
	s.log.ErrorContext(r.Context(), "internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
