// Package repo contains all database access logic for the vehicle allocation
// service. No business logic lives here; only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fleetops/vehicle-allocation/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AllocationRepo defines the persistence operations for Allocations.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type AllocationRepo interface {
	// Create inserts a new allocation and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrConflict if the (vehicle_id, allocation_date) unique
	// index rejects the insert; the authoritative resolution for
	// check-then-insert races.
	Create(ctx context.Context, a domain.Allocation) (domain.Allocation, error)

	// GetByID retrieves a single allocation by its UUID primary key.
	// Returns domain.ErrNotFound if no allocation with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Allocation, error)

	// List returns a page of allocations in insertion order (created_at).
	List(ctx context.Context, page domain.PageParams) ([]domain.Allocation, error)

	// Update overwrites the mutable fields of an existing allocation and
	// returns the updated record. Returns domain.ErrNotFound if no allocation
	// with that ID exists and domain.ErrConflict on a unique-index violation.
	Update(ctx context.Context, a domain.Allocation) (domain.Allocation, error)

	// Delete removes an allocation by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// History returns allocations matching the filter, sorted and paginated.
	History(ctx context.Context, filter domain.HistoryFilter, page domain.PageParams) ([]domain.Allocation, error)

	// VehicleAllocatedOn reports whether any allocation other than exclude
	// already holds the given vehicle on the given date. Pass uuid.Nil as
	// exclude to consider every record.
	VehicleAllocatedOn(ctx context.Context, vehicleID int64, date time.Time, exclude uuid.UUID) (bool, error)
}

// pgAllocationRepo is the Postgres implementation of AllocationRepo.
type pgAllocationRepo struct {
	db db
}

// NewAllocationRepo constructs an AllocationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewAllocationRepo(db db) AllocationRepo {
	return &pgAllocationRepo{db: db}
}

const allocationColumns = `id, employee_id, vehicle_id, allocation_date, purpose, created_at, updated_at`

// Create inserts a new allocation row and returns the full persisted record.
func (r *pgAllocationRepo) Create(ctx context.Context, a domain.Allocation) (domain.Allocation, error) {
	const q = `
		INSERT INTO allocations (employee_id, vehicle_id, allocation_date, purpose)
		VALUES (@employee_id, @vehicle_id, @allocation_date, @purpose)
		RETURNING ` + allocationColumns

	args := pgx.NamedArgs{
		"employee_id":     a.EmployeeID,
		"vehicle_id":      a.VehicleID,
		"allocation_date": a.AllocationDate,
		"purpose":         a.Purpose,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAllocation(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Allocation{}, fmt.Errorf("repo.AllocationRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Allocation{}, fmt.Errorf("repo.AllocationRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an allocation by primary key.
func (r *pgAllocationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Allocation, error) {
	const q = `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAllocation(row)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("repo.AllocationRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns a page of allocations ordered by created_at (oldest first),
// so pages are stable as new records are appended.
func (r *pgAllocationRepo) List(ctx context.Context, page domain.PageParams) ([]domain.Allocation, error) {
	const q = `
		SELECT ` + allocationColumns + `
		FROM allocations
		ORDER BY created_at, id
		OFFSET @skip LIMIT @lim`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"skip": page.Skip, "lim": page.Limit})
	if err != nil {
		return nil, fmt.Errorf("repo.AllocationRepo.List: %w", err)
	}
	defer rows.Close()

	return collectAllocations(rows, "repo.AllocationRepo.List")
}

// Update overwrites the mutable fields of an allocation and returns the
// updated record. The service has already merged the patch into a full row.
func (r *pgAllocationRepo) Update(ctx context.Context, a domain.Allocation) (domain.Allocation, error) {
	const q = `
		UPDATE allocations
		SET employee_id     = @employee_id,
		    vehicle_id      = @vehicle_id,
		    allocation_date = @allocation_date,
		    purpose         = @purpose,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + allocationColumns

	args := pgx.NamedArgs{
		"id":              a.ID,
		"employee_id":     a.EmployeeID,
		"vehicle_id":      a.VehicleID,
		"allocation_date": a.AllocationDate,
		"purpose":         a.Purpose,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAllocation(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Allocation{}, fmt.Errorf("repo.AllocationRepo.Update: %w", domain.ErrConflict)
		}
		return domain.Allocation{}, fmt.Errorf("repo.AllocationRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an allocation by primary key.
func (r *pgAllocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM allocations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.AllocationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AllocationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// sortColumns is the allowlist for the history sort_by parameter.
// Keeping the mapping explicit means the column name interpolated into the
// ORDER BY clause can never come from user input.
var sortColumns = map[string]string{
	"allocation_date": "allocation_date",
	"employee_id":     "employee_id",
	"vehicle_id":      "vehicle_id",
	"purpose":         "purpose",
	"created_at":      "created_at",
	"id":              "id",
}

// History returns allocations matching the conjunctive filter, sorted by the
// requested column and direction, with skip/limit applied after sorting.
func (r *pgAllocationRepo) History(ctx context.Context, filter domain.HistoryFilter, page domain.PageParams) ([]domain.Allocation, error) {
	var (
		where []string
		args  = pgx.NamedArgs{"skip": page.Skip, "lim": page.Limit}
	)
	if filter.EmployeeID != nil {
		where = append(where, "employee_id = @employee_id")
		args["employee_id"] = *filter.EmployeeID
	}
	if filter.VehicleID != nil {
		where = append(where, "vehicle_id = @vehicle_id")
		args["vehicle_id"] = *filter.VehicleID
	}
	if filter.StartDate != nil {
		where = append(where, "allocation_date >= @start_date")
		args["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		where = append(where, "allocation_date <= @end_date")
		args["end_date"] = *filter.EndDate
	}

	q := `SELECT ` + allocationColumns + ` FROM allocations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "allocation_date"
	}
	dir := "DESC"
	if filter.SortOrder == domain.SortAsc {
		dir = "ASC"
	}
	// Secondary sort on id keeps pagination deterministic when the primary
	// column has duplicate values.
	q += fmt.Sprintf(" ORDER BY %s %s, id %s OFFSET @skip LIMIT @lim", col, dir, dir)

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.AllocationRepo.History: %w", err)
	}
	defer rows.Close()

	return collectAllocations(rows, "repo.AllocationRepo.History")
}

// VehicleAllocatedOn probes for an existing allocation of the vehicle on the
// date, excluding at most one record (the one being updated).
func (r *pgAllocationRepo) VehicleAllocatedOn(ctx context.Context, vehicleID int64, date time.Time, exclude uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM allocations
			WHERE vehicle_id = @vehicle_id
			AND   allocation_date = @allocation_date
			AND   id <> @exclude
		)`

	args := pgx.NamedArgs{
		"vehicle_id":      vehicleID,
		"allocation_date": date,
		"exclude":         exclude,
	}

	var taken bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&taken); err != nil {
		return false, fmt.Errorf("repo.AllocationRepo.VehicleAllocatedOn: %w", err)
	}
	return taken, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanAllocation
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanAllocation maps a single database row into a domain.Allocation.
// It handles the UUID and DATE column conversions.
func scanAllocation(s scanner) (domain.Allocation, error) {
	var (
		a         domain.Allocation
		id        pgtype.UUID
		allocDate pgtype.Date
	)

	err := s.Scan(&id, &a.EmployeeID, &a.VehicleID, &allocDate, &a.Purpose, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Allocation{}, domain.ErrNotFound
		}
		return domain.Allocation{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.AllocationDate = domain.DateOnly(allocDate.Time)
	return a, nil
}

// collectAllocations drains rows into a slice, wrapping errors with op.
func collectAllocations(rows pgx.Rows, op string) ([]domain.Allocation, error) {
	var out []domain.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The unique index on (vehicle_id,
// allocation_date) is the authoritative race resolver: two concurrent creates
// can both pass the service-level pre-check, but only one insert commits.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
