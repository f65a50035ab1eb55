package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// Collection name constants.
const (
	colAllocations = "allocations"
	colEmployees   = "employees"
	colDrivers     = "drivers"
	colVehicles    = "vehicles"
)

// Ensure Store implements all subsystem interfaces at compile time.
var (
	_ allocation.Store = (*Store)(nil)
	_ employee.Store   = (*Store)(nil)
	_ driver.Store     = (*Store)(nil)
	_ vehicle.Store    = (*Store)(nil)
)

// Store is a grove ORM implementation of store.Store using MongoDB driver.
// The caller owns the *grove.DB lifecycle; Store never closes it.
type Store struct {
	db     *grove.DB
	mdb    *mongodriver.MongoDB
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a new MongoDB store. The caller owns the db lifecycle -- the
// Store will not close it on Close().
func New(db *grove.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		mdb:    mongodriver.Unwrap(db),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying *grove.DB for advanced usage.
func (s *Store) DB() *grove.DB {
	return s.db
}

// Migrate creates indexes for all fleet collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}

		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("fleet/mongo: migrate %s indexes: %w", col, err)
		}
	}

	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close is a no-op because the caller owns the *grove.DB lifecycle.
func (s *Store) Close() error {
	return nil
}

// ── helpers ──────────────────────────────────────────────────────

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments returns true when err indicates no MongoDB documents found.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

// isDuplicateKey checks if a MongoDB error is a duplicate key violation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "E11000")
}

// dayRange returns a bson filter matching instants within the calendar day
// containing day.
func dayRange(day time.Time) bson.M {
	return bson.M{
		"$gte": allocation.StartOfDay(day),
		"$lte": allocation.EndOfDay(day),
	}
}

// migrationIndexes returns the index definitions for all fleet collections.
func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colAllocations: {
			// List index: allocation date descending.
			{Keys: bson.D{{Key: "allocation_date", Value: -1}}},
			// Conflict-check index.
			{Keys: bson.D{
				{Key: "vehicle_id", Value: 1},
				{Key: "allocation_date", Value: -1},
			}},
			// Status index for stats and availability.
			{Keys: bson.D{{Key: "status", Value: 1}}},
			// Unique (vehicle, day) across active allocations. Closes the
			// check-then-act gap in the create path: concurrent creates for
			// the same vehicle and day both pass the read check, but only
			// one insert wins.
			{
				Keys: bson.D{
					{Key: "vehicle_id", Value: 1},
					{Key: "allocation_day", Value: 1},
				},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.D{
						{Key: "status", Value: string(allocation.StatusAllocated)},
					}),
			},
		},
		colVehicles: {
			// One vehicle per driver.
			{
				Keys:    bson.D{{Key: "driver_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colEmployees: {},
		colDrivers:   {},
	}
}
