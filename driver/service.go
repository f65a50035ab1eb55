package driver

import (
	"context"
	"time"

	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateParams carries the caller-supplied fields for a new driver.
type CreateParams struct {
	Name          string
	LicenseNumber string
	ContactNumber string
}

// Service provides driver registration over a Store.
type Service struct {
	store Store
}

// NewService creates a driver service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new driver, stamping the creation timestamp.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Driver, error) {
	d := &Driver{
		ID:            id.NewDriverID(),
		Name:          p.Name,
		LicenseNumber: p.LicenseNumber,
		ContactNumber: p.ContactNumber,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateDriver(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get retrieves a driver by ID.
func (s *Service) Get(ctx context.Context, driverID id.DriverID) (*Driver, error) {
	return s.store.GetDriver(ctx, driverID)
}
