package domain

import "time"

// AllocationPatch describes a partial update to an allocation.
// Each field is a pointer so "set to a value" and "leave unchanged" are
// distinguishable: a nil field is absent from the patch, a non-nil field
// replaces the stored value.
type AllocationPatch struct {
	EmployeeID     *int64
	VehicleID      *int64
	AllocationDate *time.Time
	Purpose        *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p AllocationPatch) IsEmpty() bool {
	return p.EmployeeID == nil && p.VehicleID == nil && p.AllocationDate == nil && p.Purpose == nil
}

// TouchesSlot reports whether the patch changes any of the fields that
// participate in allocation invariants (employee, vehicle, or date).
// When it does, the future-date and vehicle-uniqueness checks must be re-run
// against the effective post-patch values.
func (p AllocationPatch) TouchesSlot() bool {
	return p.EmployeeID != nil || p.VehicleID != nil || p.AllocationDate != nil
}

// Apply returns a copy of a with the patch's present fields substituted.
// The allocation date is normalized to midnight UTC.
func (p AllocationPatch) Apply(a Allocation) Allocation {
	if p.EmployeeID != nil {
		a.EmployeeID = *p.EmployeeID
	}
	if p.VehicleID != nil {
		a.VehicleID = *p.VehicleID
	}
	if p.AllocationDate != nil {
		a.AllocationDate = DateOnly(*p.AllocationDate)
	}
	if p.Purpose != nil {
		a.Purpose = *p.Purpose
	}
	return a
}
