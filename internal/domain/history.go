package domain

import "time"

// Sort directions for history queries. The numeric values match the
// sort_order query parameter of the history endpoint.
const (
	SortAsc  = 1
	SortDesc = -1
)

// HistoryFilter describes a filtered, sorted read over all allocations.
// Nil filter fields are omitted from the query; with no fields set the
// filter matches everything. Start and end dates form an inclusive range
// on the allocation date.
type HistoryFilter struct {
	EmployeeID *int64
	VehicleID  *int64
	StartDate  *time.Time
	EndDate    *time.Time

	// SortBy names the field to order by. Unknown or empty values fall back
	// to allocation_date. SortOrder is SortAsc or SortDesc; anything else is
	// treated as SortDesc, the endpoint default.
	SortBy    string
	SortOrder int
}
