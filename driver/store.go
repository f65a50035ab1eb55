package driver

import (
	"context"

	"github.com/nishorgo/vehicle-allocation/id"
)

// Store defines the persistence contract for drivers.
type Store interface {
	// CreateDriver persists a new driver.
	CreateDriver(ctx context.Context, d *Driver) error

	// GetDriver retrieves a driver by ID.
	GetDriver(ctx context.Context, driverID id.DriverID) (*Driver, error)
}
