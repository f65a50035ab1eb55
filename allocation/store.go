package allocation

import (
	"context"
	"time"

	"github.com/nishorgo/vehicle-allocation/id"
)

// ListOpts controls filtering and pagination for allocation list queries.
// Zero-value fields are not applied.
type ListOpts struct {
	// EmployeeID filters by employee reference.
	EmployeeID id.EmployeeID
	// VehicleID filters by vehicle reference.
	VehicleID id.VehicleID
	// Status filters by allocation status.
	Status Status
	// Start and End bound the allocation date. When both are set the match
	// is the inclusive instant range [Start, End]; when only Start is set
	// the match runs from the start of its day; when only End is set the
	// match runs through the end of its day.
	Start *time.Time
	End   *time.Time
	// Skip is the number of records to skip.
	Skip int
	// Limit is the maximum number of records to return. Zero means no limit.
	Limit int
}

// StatsOpts controls the date range for allocation statistics. The range is
// applied only when both bounds are set (start of Start's day through end of
// End's day).
type StatsOpts struct {
	Start *time.Time
	End   *time.Time
}

// Store defines the persistence contract for allocations.
type Store interface {
	// CreateAllocation persists a new allocation. Backends with a
	// uniqueness constraint on (vehicle, day, non-cancelled) return
	// fleet.ErrVehicleAllocated on a duplicate.
	CreateAllocation(ctx context.Context, a *Allocation) error

	// GetAllocation retrieves an allocation by ID.
	GetAllocation(ctx context.Context, allocID id.AllocationID) (*Allocation, error)

	// UpdateAllocation persists changes to an existing allocation.
	UpdateAllocation(ctx context.Context, a *Allocation) error

	// DeleteAllocation removes an allocation by ID.
	DeleteAllocation(ctx context.Context, allocID id.AllocationID) error

	// ListAllocations returns allocations matching opts, sorted by
	// allocation date descending.
	ListAllocations(ctx context.Context, opts ListOpts) ([]*Allocation, error)

	// CountAllocationsByStatus returns per-status allocation counts over
	// the optionally date-bounded set.
	CountAllocationsByStatus(ctx context.Context, opts StatsOpts) (map[Status]int64, error)

	// FindActiveAllocation returns the non-cancelled allocation for the
	// vehicle on the calendar day containing day, or
	// fleet.ErrAllocationNotFound when there is none.
	FindActiveAllocation(ctx context.Context, vehicleID id.VehicleID, day time.Time) (*Allocation, error)

	// ListAllocatedVehicles returns the distinct vehicle references with a
	// non-cancelled allocation on the calendar day containing day.
	ListAllocatedVehicles(ctx context.Context, day time.Time) ([]id.VehicleID, error)
}
