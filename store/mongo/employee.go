package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateEmployee persists a new employee.
func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	m := toEmployeeModel(e)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("fleet/mongo: create employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, employeeID id.EmployeeID) (*employee.Employee, error) {
	col := s.mdb.Collection(colEmployees)
	var m employeeModel
	err := col.FindOne(ctx, bson.M{"_id": employeeID.String()}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fleet.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("fleet/mongo: get employee: %w", err)
	}
	return fromEmployeeModel(&m)
}
