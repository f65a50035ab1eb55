package vehicle

import (
	"context"

	"github.com/nishorgo/vehicle-allocation/id"
)

// Store defines the persistence contract for vehicles.
type Store interface {
	// CreateVehicle persists a new vehicle. Backends with a uniqueness
	// constraint on driver_id return fleet.ErrDriverAssigned on a
	// duplicate.
	CreateVehicle(ctx context.Context, v *Vehicle) error

	// GetVehicle retrieves a vehicle by ID.
	GetVehicle(ctx context.Context, vehicleID id.VehicleID) (*Vehicle, error)

	// ListVehicles returns all vehicles.
	ListVehicles(ctx context.Context) ([]*Vehicle, error)

	// FindVehicleByDriver returns the vehicle the driver is assigned to,
	// or fleet.ErrVehicleNotFound when the driver is unassigned.
	FindVehicleByDriver(ctx context.Context, driverID id.DriverID) (*Vehicle, error)
}
