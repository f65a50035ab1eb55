// Package fleet provides a vehicle-allocation booking service: employees are
// matched to vehicles for specific dates, with conflict checks preventing
// double-booking and edit windows that close as the allocation date arrives.
//
// The service is designed as a library plus a thin HTTP layer. Configure a
// store backend and wire the subsystem services:
//
//	st := memory.New()
//	app, err := fleet.New(
//	    fleet.WithStore(st),
//	    fleet.WithLogger(logger),
//	)
//
// # Architecture
//
// Fleet follows a composable store pattern where each subsystem (allocation,
// employee, driver, vehicle) defines its own store interface. A single
// backend implements all of them. Backends: MongoDB, Bun/Postgres, and
// Memory.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based,
// compile-time safe identifiers.
package fleet
