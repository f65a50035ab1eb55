package fleet

import "errors"

var (
	// Store errors.
	ErrNoStore         = errors.New("fleet: no store configured")
	ErrStoreClosed     = errors.New("fleet: store closed")
	ErrMigrationFailed = errors.New("fleet: migration failed")

	// Not found errors.
	ErrAllocationNotFound = errors.New("fleet: allocation not found")
	ErrEmployeeNotFound   = errors.New("fleet: employee not found")
	ErrDriverNotFound     = errors.New("fleet: driver not found")
	ErrVehicleNotFound    = errors.New("fleet: vehicle not found")

	// Conflict errors.
	ErrVehicleAllocated = errors.New("fleet: vehicle is already allocated for this date")
	ErrDriverAssigned   = errors.New("fleet: driver is already assigned to another vehicle")

	// Date-window errors. The delete window closes one instant later than
	// the update window; the two sentinels stay distinct.
	ErrPastDate           = errors.New("fleet: cannot create allocation for past dates")
	ErrUpdateWindowClosed = errors.New("fleet: cannot update on allocated date and after")
	ErrDeleteWindowClosed = errors.New("fleet: cannot delete on allocated date and after")
)
