package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/vehicle-allocation/internal/domain"
)

func TestAllocationPatch_Apply(t *testing.T) {
	base := domain.Allocation{
		EmployeeID:     1,
		VehicleID:      2,
		AllocationDate: time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC),
		Purpose:        "original",
	}

	newVehicle := int64(9)
	newDate := time.Date(2031, 7, 1, 15, 30, 0, 0, time.UTC) // time component present

	got := domain.AllocationPatch{
		VehicleID:      &newVehicle,
		AllocationDate: &newDate,
	}.Apply(base)

	assert.Equal(t, int64(9), got.VehicleID)
	// The date is normalized to midnight UTC on application.
	assert.Equal(t, time.Date(2031, 7, 1, 0, 0, 0, 0, time.UTC), got.AllocationDate)
	// Absent fields are untouched.
	assert.Equal(t, int64(1), got.EmployeeID)
	assert.Equal(t, "original", got.Purpose)
}

func TestAllocationPatch_Apply_Empty(t *testing.T) {
	base := domain.Allocation{EmployeeID: 1, VehicleID: 2, Purpose: "original"}

	got := domain.AllocationPatch{}.Apply(base)

	assert.Equal(t, base, got, "an empty patch is the identity")
}

func TestAllocationPatch_TouchesSlot(t *testing.T) {
	emp := int64(1)
	purpose := "x"
	d := time.Now()

	assert.False(t, domain.AllocationPatch{}.TouchesSlot())
	assert.False(t, domain.AllocationPatch{Purpose: &purpose}.TouchesSlot(),
		"purpose does not participate in any invariant")
	assert.True(t, domain.AllocationPatch{EmployeeID: &emp}.TouchesSlot())
	assert.True(t, domain.AllocationPatch{VehicleID: &emp}.TouchesSlot())
	assert.True(t, domain.AllocationPatch{AllocationDate: &d}.TouchesSlot())
}

func TestAllocationPatch_IsEmpty(t *testing.T) {
	purpose := "x"

	assert.True(t, domain.AllocationPatch{}.IsEmpty())
	assert.False(t, domain.AllocationPatch{Purpose: &purpose}.IsEmpty())
}
