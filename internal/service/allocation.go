// Package service contains the business logic for the vehicle allocation API.
// Services validate inputs, enforce allocation invariants, and orchestrate
// repo calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/vehicle-allocation/internal/domain"
	"github.com/fleetops/vehicle-allocation/internal/repo"
)

// AllocationService implements business logic for Allocation operations.
// It is stateless per request: the only state it holds is the repo handle.
type AllocationService struct {
	repo repo.AllocationRepo
	now  func() time.Time
}

// NewAllocationService constructs an AllocationService backed by the provided
// AllocationRepo.
func NewAllocationService(r repo.AllocationRepo) *AllocationService {
	return &AllocationService{repo: r, now: time.Now}
}

// today returns the current calendar date at midnight UTC.
func (s *AllocationService) today() time.Time {
	return domain.DateOnly(s.now())
}

// Create validates and persists a new allocation.
//   - domain.ErrInvalidDate if the allocation date is not strictly in the future.
//   - domain.ErrConflict if the vehicle is already allocated on that date,
//     caught either by the pre-check here or by the unique index on insert
//     (a concurrent create that loses the race surfaces identically).
func (s *AllocationService) Create(ctx context.Context, a domain.Allocation) (domain.Allocation, error) {
	a.AllocationDate = domain.DateOnly(a.AllocationDate)

	if err := validateFutureDate(a.AllocationDate, s.today()); err != nil {
		return domain.Allocation{}, err
	}
	if err := s.checkVehicleFree(ctx, a.VehicleID, a.AllocationDate, uuid.Nil); err != nil {
		return domain.Allocation{}, err
	}

	result, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("service.AllocationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single allocation by ID.
// Returns domain.ErrNotFound if no allocation with that ID exists.
func (s *AllocationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Allocation, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("service.AllocationService.GetByID: %w", err)
	}
	return result, nil
}

// List returns a page of allocations.
// Always returns a non-nil slice so callers can safely range over it.
func (s *AllocationService) List(ctx context.Context, page domain.PageParams) ([]domain.Allocation, error) {
	allocations, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("service.AllocationService.List: %w", err)
	}
	if allocations == nil {
		return []domain.Allocation{}, nil
	}
	return allocations, nil
}

// Update applies a partial update to an existing allocation.
//   - domain.ErrNotFound if the allocation does not exist.
//   - domain.ErrImmutable if the existing allocation's date has elapsed.
//   - domain.ErrInvalidDate / domain.ErrConflict when the patch touches the
//     employee, vehicle, or date and the effective post-patch values violate
//     the future-date or vehicle-uniqueness rules. The uniqueness scan
//     excludes the record being updated.
func (s *AllocationService) Update(ctx context.Context, id uuid.UUID, patch domain.AllocationPatch) (domain.Allocation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("service.AllocationService.Update: %w", err)
	}

	today := s.today()
	if err := validateMutable(existing, today); err != nil {
		return domain.Allocation{}, err
	}

	effective := patch.Apply(existing)
	if patch.TouchesSlot() {
		if err := validateFutureDate(effective.AllocationDate, today); err != nil {
			return domain.Allocation{}, err
		}
		if err := s.checkVehicleFree(ctx, effective.VehicleID, effective.AllocationDate, existing.ID); err != nil {
			return domain.Allocation{}, err
		}
	}

	updated, err := s.repo.Update(ctx, effective)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("service.AllocationService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an allocation by ID.
//   - domain.ErrNotFound if the allocation does not exist.
//   - domain.ErrImmutable if the allocation's date has elapsed.
func (s *AllocationService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.AllocationService.Delete: %w", err)
	}
	if err := validateMutable(existing, s.today()); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("service.AllocationService.Delete: %w", err)
	}
	return nil
}

// History returns allocations matching the filter, sorted and paginated.
// Date bounds are normalized to calendar dates; the range is inclusive on
// both ends. Always returns a non-nil slice.
func (s *AllocationService) History(ctx context.Context, filter domain.HistoryFilter, page domain.PageParams) ([]domain.Allocation, error) {
	if filter.StartDate != nil {
		d := domain.DateOnly(*filter.StartDate)
		filter.StartDate = &d
	}
	if filter.EndDate != nil {
		d := domain.DateOnly(*filter.EndDate)
		filter.EndDate = &d
	}

	allocations, err := s.repo.History(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("service.AllocationService.History: %w", err)
	}
	if allocations == nil {
		return []domain.Allocation{}, nil
	}
	return allocations, nil
}

// checkVehicleFree rejects with domain.ErrConflict when the vehicle already
// has an allocation on the date. exclude removes the record being updated
// from the scan; pass uuid.Nil on create.
//
// Note: there is deliberately no matching check for the employee; one
// employee may hold allocations for several vehicles on the same date.
func (s *AllocationService) checkVehicleFree(ctx context.Context, vehicleID int64, date time.Time, exclude uuid.UUID) error {
	taken, err := s.repo.VehicleAllocatedOn(ctx, vehicleID, date, exclude)
	if err != nil {
		return fmt.Errorf("service.AllocationService.checkVehicleFree: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: vehicle already allocated for this date", domain.ErrConflict)
	}
	return nil
}

// validateFutureDate enforces the strictly-future rule: an allocation date
// equal to today is already rejected, not just dates in the past.
func validateFutureDate(date, today time.Time) error {
	if !date.After(today) {
		return fmt.Errorf("%w: allocation date must be in the future", domain.ErrInvalidDate)
	}
	return nil
}

// validateMutable enforces the temporal guard shared by update and delete:
// an allocation dated today or earlier is frozen.
func validateMutable(existing domain.Allocation, today time.Time) error {
	if !existing.AllocationDate.After(today) {
		return fmt.Errorf("%w: cannot modify past allocations", domain.ErrImmutable)
	}
	return nil
}
