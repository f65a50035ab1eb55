// Package store and its subpackages implement persistence for the fleet
// service.
//
//   - store/mongo: MongoDB backend via grove (primary)
//   - store/bun: Postgres backend via the Bun ORM
//   - store/memory: in-memory backend for tests and development
package store
