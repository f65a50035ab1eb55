// Package store defines the aggregate persistence interface. Each subsystem
// (allocation, employee, driver, vehicle) defines its own store interface.
// The composite Store composes them all. Backends: MongoDB, Bun/Postgres,
// and Memory.
package store

import (
	"context"

	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// Store is the aggregate persistence interface. Each subsystem store is a
// composable interface; a single backend (mongo, bun, memory) implements
// all of them.
type Store interface {
	allocation.Store
	employee.Store
	driver.Store
	vehicle.Store

	// Migrate creates collections, tables, and indexes as needed.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
