//go:build integration

package bunstore_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/id"
	bunstore "github.com/nishorgo/vehicle-allocation/store/bun"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// setupTestStore creates a Postgres container and returns a connected Bun Store.
func setupTestStore(t *testing.T) *bunstore.Store {
	t.Helper()

	ctx := context.Background()

	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("fleet_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if termErr := container.Terminate(ctx); termErr != nil {
			t.Logf("terminate container: %v", termErr)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	// Create Bun DB from pgdriver.
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	db := bun.NewDB(sqldb, pgdialect.New())

	t.Cleanup(func() {
		_ = db.Close()
	})

	store := bunstore.New(db, bunstore.WithLogger(slog.Default()))

	if migErr := store.Migrate(ctx); migErr != nil {
		t.Fatalf("migrate: %v", migErr)
	}

	return store
}

func day(offset int) time.Time {
	return allocation.StartOfDay(time.Now().UTC()).AddDate(0, 0, offset)
}

func newAllocation(vehicleID id.VehicleID, date time.Time, status allocation.Status) *allocation.Allocation {
	return &allocation.Allocation{
		Entity:         fleet.NewEntity(),
		ID:             id.NewAllocationID(),
		EmployeeID:     id.NewEmployeeID(),
		VehicleID:      vehicleID,
		AllocationDate: date,
		Purpose:        "integration",
		Status:         status,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestAllocationRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := newAllocation(id.NewVehicleID(), day(1).Add(9*time.Hour), allocation.StatusAllocated)
	if err := s.CreateAllocation(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetAllocation(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Purpose != a.Purpose || got.Status != a.Status {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.AllocationDate.Equal(a.AllocationDate) {
		t.Fatalf("allocation date = %v, want %v", got.AllocationDate, a.AllocationDate)
	}

	got.Status = allocation.StatusCancelled
	if err := s.UpdateAllocation(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	updated, _ := s.GetAllocation(ctx, a.ID)
	if updated.Status != allocation.StatusCancelled {
		t.Fatalf("status = %q after update", updated.Status)
	}

	if err := s.DeleteAllocation(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetAllocation(ctx, a.ID); !errors.Is(err, fleet.ErrAllocationNotFound) {
		t.Fatalf("expected ErrAllocationNotFound, got %v", err)
	}
}

func TestAllocationUniqueVehicleDay(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	vehicleID := id.NewVehicleID()

	if err := s.CreateAllocation(ctx, newAllocation(vehicleID, day(1).Add(8*time.Hour), allocation.StatusAllocated)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same vehicle and day, different time of day: rejected by the partial
	// unique index.
	err := s.CreateAllocation(ctx, newAllocation(vehicleID, day(1).Add(16*time.Hour), allocation.StatusAllocated))
	if !errors.Is(err, fleet.ErrVehicleAllocated) {
		t.Fatalf("expected ErrVehicleAllocated, got %v", err)
	}

	// Cancelled rows do not participate in the index.
	if err := s.CreateAllocation(ctx, newAllocation(vehicleID, day(2), allocation.StatusCancelled)); err != nil {
		t.Fatalf("cancelled create: %v", err)
	}
	if err := s.CreateAllocation(ctx, newAllocation(vehicleID, day(2), allocation.StatusAllocated)); err != nil {
		t.Fatalf("create alongside cancelled: %v", err)
	}
}

func TestAllocationListAndStats(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	vehicleID := id.NewVehicleID()
	for i := 1; i <= 3; i++ {
		status := allocation.StatusAllocated
		if i == 3 {
			status = allocation.StatusCancelled
		}
		if err := s.CreateAllocation(ctx, newAllocation(vehicleID, day(i), status)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	list, err := s.ListAllocations(ctx, allocation.ListOpts{VehicleID: vehicleID, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d allocations, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].AllocationDate.After(list[i-1].AllocationDate) {
			t.Fatalf("list not sorted descending at index %d", i)
		}
	}

	breakdown, err := s.CountAllocationsByStatus(ctx, allocation.StatsOpts{})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if breakdown[allocation.StatusAllocated] != 2 || breakdown[allocation.StatusCancelled] != 1 {
		t.Fatalf("breakdown = %v", breakdown)
	}

	ids, err := s.ListAllocatedVehicles(ctx, day(1))
	if err != nil {
		t.Fatalf("allocated vehicles: %v", err)
	}
	if len(ids) != 1 || ids[0].String() != vehicleID.String() {
		t.Fatalf("allocated vehicles = %v", ids)
	}
}

func TestVehicleDriverConstraint(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	driverID := id.NewDriverID()
	v := &vehicle.Vehicle{
		ID:        id.NewVehicleID(),
		Brand:     "Toyota",
		DriverID:  driverID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateVehicle(ctx, v); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	dup := &vehicle.Vehicle{
		ID:        id.NewVehicleID(),
		Brand:     "Honda",
		DriverID:  driverID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateVehicle(ctx, dup); !errors.Is(err, fleet.ErrDriverAssigned) {
		t.Fatalf("expected ErrDriverAssigned, got %v", err)
	}

	found, err := s.FindVehicleByDriver(ctx, driverID)
	if err != nil {
		t.Fatalf("find by driver: %v", err)
	}
	if found.ID.String() != v.ID.String() {
		t.Fatalf("found %s, want %s", found.ID, v.ID)
	}
}
