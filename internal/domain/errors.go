package domain

import "errors"

// The error taxonomy is a closed enumeration. Services return one of these
// sentinels (usually wrapped with context via fmt.Errorf and %w); the handler
// layer maps each kind to an HTTP status with a single table. Anything that
// is not one of these is treated as an internal error.
var (
	// ErrNotFound is returned when the requested allocation does not exist.
	// Handlers map this to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an allocation would violate the
	// (vehicle_id, allocation_date) uniqueness invariant; whether caught by
	// the pre-insert check or by the database unique index losing a race.
	ErrConflict = errors.New("conflict")

	// ErrInvalidDate is returned when an allocation date is not strictly in
	// the future (today does not count as future).
	ErrInvalidDate = errors.New("invalid date")

	// ErrImmutable is returned when an update or delete targets an
	// allocation whose date is today or earlier. Past allocations are frozen.
	ErrImmutable = errors.New("immutable")
)
