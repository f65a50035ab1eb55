package bunstore

import (
	"context"
	"fmt"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateEmployee persists a new employee.
func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	m := toEmployeeModel(e)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("fleet/bun: create employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, employeeID id.EmployeeID) (*employee.Employee, error) {
	m := new(employeeModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", employeeID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fleet.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("fleet/bun: get employee: %w", err)
	}
	return fromEmployeeModel(m)
}
