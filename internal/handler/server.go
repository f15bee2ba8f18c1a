// Package handler implements the HTTP layer of the vehicle allocation API:
// chi routes, request decoding, query-param parsing, the response envelope,
// and the error-to-status mapping table. No business logic lives here.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fleetops/vehicle-allocation/internal/domain"
)

// AllocationServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AllocationServicer interface {
	Create(ctx context.Context, a domain.Allocation) (domain.Allocation, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Allocation, error)
	List(ctx context.Context, page domain.PageParams) ([]domain.Allocation, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.AllocationPatch) (domain.Allocation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, filter domain.HistoryFilter, page domain.PageParams) ([]domain.Allocation, error)
}

// Server holds the handler dependencies. Handler methods live in
// allocation.go and health.go but all operate on this struct.
type Server struct {
	allocations AllocationServicer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(allocations AllocationServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{allocations: allocations, log: log}
}

// Routes builds the chi router for the full API surface.
// The /history route is registered before /{id} so "history" is never
// captured as an id parameter.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)

	r.Route("/api/v1/allocations", func(r chi.Router) {
		r.Post("/", s.createAllocation)
		r.Get("/", s.listAllocations)
		r.Get("/history", s.allocationHistory)
		r.Get("/{id}", s.getAllocation)
		r.Put("/{id}", s.updateAllocation)
		r.Delete("/{id}", s.deleteAllocation)
	})

	return r
}

// ServeHTTP makes Server usable directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Routes().ServeHTTP(w, r)
}
