package employee

import (
	"context"

	"github.com/nishorgo/vehicle-allocation/id"
)

// Store defines the persistence contract for employees.
type Store interface {
	// CreateEmployee persists a new employee.
	CreateEmployee(ctx context.Context, e *Employee) error

	// GetEmployee retrieves an employee by ID.
	GetEmployee(ctx context.Context, employeeID id.EmployeeID) (*Employee, error)
}
