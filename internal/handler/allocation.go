package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/fleetops/vehicle-allocation/internal/domain"
)

// createAllocationRequest is the body of POST /api/v1/allocations/.
// All fields are required; pointers let us distinguish "missing" from the
// zero value and report which field is absent.
type createAllocationRequest struct {
	EmployeeID     *int64              `json:"employee_id"`
	VehicleID      *int64              `json:"vehicle_id"`
	AllocationDate *openapi_types.Date `json:"allocation_date"`
	Purpose        *string             `json:"purpose"`
}

// updateAllocationRequest is the body of PUT /api/v1/allocations/{id}.
// Any subset of fields may be present; absent fields are left unchanged.
type updateAllocationRequest struct {
	EmployeeID     *int64              `json:"employee_id"`
	VehicleID      *int64              `json:"vehicle_id"`
	AllocationDate *openapi_types.Date `json:"allocation_date"`
	Purpose        *string             `json:"purpose"`
}

// allocationResponse is the wire shape of a single allocation.
// The allocation date is rendered as a bare ISO date ("2006-01-02").
type allocationResponse struct {
	ID             uuid.UUID          `json:"id"`
	EmployeeID     int64              `json:"employee_id"`
	VehicleID      int64              `json:"vehicle_id"`
	AllocationDate openapi_types.Date `json:"allocation_date"`
	Purpose        string             `json:"purpose"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// createAllocation handles POST /api/v1/allocations/.
func (s *Server) createAllocation(w http.ResponseWriter, r *http.Request) {
	var req createAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var missing string
	switch {
	case req.EmployeeID == nil:
		missing = "employee_id"
	case req.VehicleID == nil:
		missing = "vehicle_id"
	case req.AllocationDate == nil:
		missing = "allocation_date"
	case req.Purpose == nil:
		missing = "purpose"
	}
	if missing != "" {
		respondError(w, http.StatusBadRequest, missing+" is required")
		return
	}

	created, err := s.allocations.Create(r.Context(), domain.Allocation{
		EmployeeID:     *req.EmployeeID,
		VehicleID:      *req.VehicleID,
		AllocationDate: req.AllocationDate.Time,
		Purpose:        *req.Purpose,
	})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, "Allocation created successfully", toResponse(created))
}

// listAllocations handles GET /api/v1/allocations/.
// Supports ?skip= and ?limit= query parameters (defaults: skip=0, limit=10);
// out-of-range values are rejected with a 400.
func (s *Server) listAllocations(w http.ResponseWriter, r *http.Request) {
	page, ok := queryPage(w, r)
	if !ok {
		return
	}

	allocations, err := s.allocations.List(r.Context(), page)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, "Allocations retrieved successfully", toResponseList(allocations))
}

// getAllocation handles GET /api/v1/allocations/{id}.
func (s *Server) getAllocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	allocation, err := s.allocations.GetByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, "Allocation retrieved successfully", toResponse(allocation))
}

// updateAllocation handles PUT /api/v1/allocations/{id}.
func (s *Server) updateAllocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.AllocationPatch{
		EmployeeID: req.EmployeeID,
		VehicleID:  req.VehicleID,
		Purpose:    req.Purpose,
	}
	if req.AllocationDate != nil {
		patch.AllocationDate = &req.AllocationDate.Time
	}

	updated, err := s.allocations.Update(r.Context(), id, patch)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, "Allocation updated successfully", toResponse(updated))
}

// deleteAllocation handles DELETE /api/v1/allocations/{id}.
func (s *Server) deleteAllocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.allocations.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, "Allocation deleted successfully", nil)
}

// allocationHistory handles GET /api/v1/allocations/history.
// All filter parameters are optional; with none supplied the query matches
// every allocation. The date range is inclusive on both ends.
func (s *Server) allocationHistory(w http.ResponseWriter, r *http.Request) {
	var (
		filter domain.HistoryFilter
		err    error
	)

	if filter.EmployeeID, err = queryInt64(r, "employee_id"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.VehicleID, err = queryInt64(r, "vehicle_id"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.StartDate, err = queryDate(r, "start_date"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.EndDate, err = queryDate(r, "end_date"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter.SortBy = "allocation_date"
	if v := r.URL.Query().Get("sort_by"); v != "" {
		filter.SortBy = v
	}

	filter.SortOrder = domain.SortDesc
	if v := r.URL.Query().Get("sort_order"); v != "" {
		order, convErr := strconv.Atoi(v)
		if convErr != nil || (order != domain.SortAsc && order != domain.SortDesc) {
			respondError(w, http.StatusBadRequest, "sort_order must be 1 or -1")
			return
		}
		filter.SortOrder = order
	}

	page, ok := queryPage(w, r)
	if !ok {
		return
	}

	allocations, err := s.allocations.History(r.Context(), filter, page)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, "Allocation history retrieved successfully", toResponseList(allocations))
}

// --- mapping and parsing helpers --------------------------------------------

// pathID extracts and parses the {id} path parameter. On a malformed UUID it
// writes a 400 envelope and returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid allocation id")
		return uuid.Nil, false
	}
	return id, true
}

// queryPage parses the optional skip/limit query parameters into a
// PageParams. On a malformed or out-of-range value it writes a 400 envelope
// and returns ok=false.
func queryPage(w http.ResponseWriter, r *http.Request) (domain.PageParams, bool) {
	skip, err := queryInt(r, "skip")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return domain.PageParams{}, false
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return domain.PageParams{}, false
	}
	page, err := domain.NewPageParams(skip, limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return domain.PageParams{}, false
	}
	return page, true
}

// queryInt parses an optional integer query parameter.
// Returns nil when the parameter is absent or empty.
func queryInt(r *http.Request, name string) (*int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// queryInt64 parses an optional int64 query parameter.
func queryInt64(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// queryDate parses an optional ISO date ("2006-01-02") query parameter.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, errors.New(name + " must be an ISO date (YYYY-MM-DD)")
	}
	t = t.UTC()
	return &t, nil
}

// toResponse converts a domain.Allocation into its wire shape.
func toResponse(a domain.Allocation) allocationResponse {
	return allocationResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		VehicleID:      a.VehicleID,
		AllocationDate: openapi_types.Date{Time: a.AllocationDate},
		Purpose:        a.Purpose,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// toResponseList converts a slice of allocations, never returning nil so the
// envelope's data field serializes as [] rather than null.
func toResponseList(allocations []domain.Allocation) []allocationResponse {
	out := make([]allocationResponse, len(allocations))
	for i, a := range allocations {
		out[i] = toResponse(a)
	}
	return out
}
