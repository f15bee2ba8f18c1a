// Package domain contains the core data types for the vehicle allocation
// service. This package has no dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Allocation binds one vehicle to one employee for one calendar date.
// At most one allocation may exist per (VehicleID, AllocationDate) pair;
// the service enforces this and the database mirrors it with a unique index.
type Allocation struct {
	ID             uuid.UUID `json:"id"`
	EmployeeID     int64     `json:"employee_id"`
	VehicleID      int64     `json:"vehicle_id"`
	AllocationDate time.Time `json:"allocation_date"` // date only, midnight UTC
	Purpose        string    `json:"purpose,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DateOnly truncates t to its calendar date in UTC (midnight).
// All allocation-date comparisons in the service are date-granular, so every
// date entering the domain passes through this first.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
