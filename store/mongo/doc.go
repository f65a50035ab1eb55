// Package mongo implements store.Store on MongoDB via the grove ORM. It is
// the primary backend: the service delegates all persistent state to four
// document collections (allocations, employees, drivers, vehicles) keyed by
// TypeID strings.
//
// The caller owns the *grove.DB lifecycle; the Store never closes it.
//
//	db, err := grove.Open(mongodriver.New(uri, database))
//	st := mongo.New(db)
//	if err := st.Migrate(ctx); err != nil { ... }
//
// Migrate creates the query indexes plus two uniqueness constraints that
// back the business rules: a partial unique index on
// (vehicle_id, allocation_day) for non-cancelled allocations, and a unique
// index on vehicles.driver_id.
package mongo
