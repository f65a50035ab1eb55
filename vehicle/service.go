package vehicle

import (
	"context"
	"errors"
	"fmt"
	"time"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateParams carries the caller-supplied fields for a new vehicle.
type CreateParams struct {
	Brand              string
	Model              string
	RegistrationNumber string
	DriverID           id.DriverID
}

// Service provides vehicle registration over a Store.
type Service struct {
	store Store
}

// NewService creates a vehicle service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new vehicle and assigns it to a driver. It fails with
// fleet.ErrDriverAssigned when the driver already appears on another
// vehicle record.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Vehicle, error) {
	existing, err := s.store.FindVehicleByDriver(ctx, p.DriverID)
	if err != nil && !errors.Is(err, fleet.ErrVehicleNotFound) {
		return nil, fmt.Errorf("vehicle: check driver assignment: %w", err)
	}
	if existing != nil {
		return nil, fleet.ErrDriverAssigned
	}

	v := &Vehicle{
		ID:                 id.NewVehicleID(),
		Brand:              p.Brand,
		Model:              p.Model,
		RegistrationNumber: p.RegistrationNumber,
		DriverID:           p.DriverID,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get retrieves a vehicle by ID.
func (s *Service) Get(ctx context.Context, vehicleID id.VehicleID) (*Vehicle, error) {
	return s.store.GetVehicle(ctx, vehicleID)
}
