package employee

import (
	"context"
	"time"

	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateParams carries the caller-supplied fields for a new employee.
type CreateParams struct {
	Name       string
	Department string
	Email      string
}

// Service provides employee registration over a Store.
type Service struct {
	store Store
}

// NewService creates an employee service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new employee, stamping the creation timestamp.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Employee, error) {
	e := &Employee{
		ID:         id.NewEmployeeID(),
		Name:       p.Name,
		Department: p.Department,
		Email:      p.Email,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get retrieves an employee by ID.
func (s *Service) Get(ctx context.Context, employeeID id.EmployeeID) (*Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}
