package allocation

import (
	"time"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/id"
)

// Status represents the lifecycle state of an allocation.
type Status string

const (
	// StatusAllocated means the vehicle is booked for the employee on the
	// allocation date.
	StatusAllocated Status = "allocated"
	// StatusCancelled means the booking was called off. Cancelled
	// allocations do not block the vehicle for the date.
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known allocation status.
func (s Status) Valid() bool {
	return s == StatusAllocated || s == StatusCancelled
}

// Allocation links one employee to one vehicle for one calendar date.
// AllocationDate is stored as an instant but carries date-only semantics:
// all conflict and edit-window rules compare its UTC date portion.
type Allocation struct {
	fleet.Entity

	ID             id.AllocationID `json:"id"`
	EmployeeID     id.EmployeeID   `json:"employee_id"`
	VehicleID      id.VehicleID    `json:"vehicle_id"`
	AllocationDate time.Time       `json:"allocation_date"`
	Purpose        string          `json:"purpose"`
	Status         Status          `json:"status"`
}

// StartOfDay returns midnight UTC of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
