package allocation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/middleware"
	"github.com/nishorgo/vehicle-allocation/store/memory"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

func newService(t *testing.T) (*allocation.Service, *memory.Store) {
	t.Helper()
	st := memory.New()
	return allocation.NewService(st, st), st
}

// day returns midnight UTC offset whole days from today.
func day(offset int) time.Time {
	return allocation.StartOfDay(time.Now().UTC()).AddDate(0, 0, offset)
}

func createParams(vehicleID id.VehicleID, date time.Time) allocation.CreateParams {
	return allocation.CreateParams{
		EmployeeID:     id.NewEmployeeID(),
		VehicleID:      vehicleID,
		AllocationDate: date,
		Purpose:        "Business Trip",
	}
}

// seedAllocation inserts an allocation directly into the store, bypassing
// the create-time date rules. Used to stage past-dated records.
func seedAllocation(t *testing.T, st *memory.Store, date time.Time) *allocation.Allocation {
	t.Helper()
	a := &allocation.Allocation{
		Entity:         fleet.NewEntity(),
		ID:             id.NewAllocationID(),
		EmployeeID:     id.NewEmployeeID(),
		VehicleID:      id.NewVehicleID(),
		AllocationDate: date,
		Purpose:        "seeded",
		Status:         allocation.StatusAllocated,
	}
	if err := st.CreateAllocation(context.Background(), a); err != nil {
		t.Fatalf("seed allocation: %v", err)
	}
	return a
}

// ──────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────

func TestCreate(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"tomorrow", day(1), nil},
		{"today", day(0).Add(12 * time.Hour), nil},
		{"yesterday", day(-1), fleet.ErrPastDate},
		{"last week", day(-7), fleet.ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.Create(ctx, createParams(id.NewVehicleID(), tt.date))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if created.Status != allocation.StatusAllocated {
				t.Fatalf("status = %q, want %q", created.Status, allocation.StatusAllocated)
			}
			if created.ID.IsNil() {
				t.Fatal("created allocation has nil ID")
			}
			if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
				t.Fatal("created allocation missing timestamps")
			}
		})
	}
}

func TestCreateConflict(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	vehicleID := id.NewVehicleID()

	if _, err := svc.Create(ctx, createParams(vehicleID, day(1).Add(9*time.Hour))); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same vehicle, same calendar day, different time of day.
	_, err := svc.Create(ctx, createParams(vehicleID, day(1).Add(17*time.Hour)))
	if !errors.Is(err, fleet.ErrVehicleAllocated) {
		t.Fatalf("expected ErrVehicleAllocated, got %v", err)
	}

	// Same vehicle, next day.
	if _, err := svc.Create(ctx, createParams(vehicleID, day(2))); err != nil {
		t.Fatalf("next-day create: %v", err)
	}

	// Another vehicle, same day.
	if _, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(1))); err != nil {
		t.Fatalf("other-vehicle create: %v", err)
	}
}

func TestCreateAfterCancellation(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	vehicleID := id.NewVehicleID()

	first, err := svc.Create(ctx, createParams(vehicleID, day(1)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := allocation.StatusCancelled
	if _, err := svc.Update(ctx, first.ID, allocation.UpdateParams{Status: &cancelled}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled allocation does not block a new booking for the same
	// vehicle and date.
	if _, err := svc.Create(ctx, createParams(vehicleID, day(1))); err != nil {
		t.Fatalf("create after cancellation: %v", err)
	}
}

func TestReactivateIntoOccupiedDay(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	vehicleID := id.NewVehicleID()

	first, err := svc.Create(ctx, createParams(vehicleID, day(1)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := allocation.StatusCancelled
	if _, err := svc.Update(ctx, first.ID, allocation.UpdateParams{Status: &cancelled}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The freed slot is taken by a second booking.
	if _, err := svc.Create(ctx, createParams(vehicleID, day(1))); err != nil {
		t.Fatalf("rebook: %v", err)
	}

	// Re-activating the cancelled booking would put two active allocations
	// on the same vehicle and day; the store rejects it.
	active := allocation.StatusAllocated
	if _, err := svc.Update(ctx, first.ID, allocation.UpdateParams{Status: &active}); !errors.Is(err, fleet.ErrVehicleAllocated) {
		t.Fatalf("expected ErrVehicleAllocated, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────

func TestUpdate(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(2)))
	if err != nil {
		t.Fatal(err)
	}

	purpose := "Updated Purpose"
	status := allocation.StatusCancelled
	updated, err := svc.Update(ctx, created.ID, allocation.UpdateParams{
		Purpose: &purpose,
		Status:  &status,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Purpose != purpose {
		t.Fatalf("purpose = %q, want %q", updated.Purpose, purpose)
	}
	if updated.Status != status {
		t.Fatalf("status = %q, want %q", updated.Status, status)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatal("UpdatedAt not refreshed")
	}
}

func TestUpdatePartial(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(2)))
	if err != nil {
		t.Fatal(err)
	}

	// Only purpose supplied: status must survive.
	purpose := "Changed"
	updated, err := svc.Update(ctx, created.ID, allocation.UpdateParams{Purpose: &purpose})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != allocation.StatusAllocated {
		t.Fatalf("status = %q, want untouched %q", updated.Status, allocation.StatusAllocated)
	}

	// Nothing supplied: record unchanged but UpdatedAt still refreshed.
	again, err := svc.Update(ctx, created.ID, allocation.UpdateParams{})
	if err != nil {
		t.Fatal(err)
	}
	if again.Purpose != purpose {
		t.Fatalf("purpose = %q, want %q", again.Purpose, purpose)
	}
}

func TestUpdateWindow(t *testing.T) {
	t.Parallel()
	svc, st := newService(t)
	ctx := context.Background()

	// Allocation dated today: window already closed.
	today, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(0).Add(12*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}

	purpose := "too late"
	if _, err := svc.Update(ctx, today.ID, allocation.UpdateParams{Purpose: &purpose}); !errors.Is(err, fleet.ErrUpdateWindowClosed) {
		t.Fatalf("expected ErrUpdateWindowClosed for today, got %v", err)
	}

	// Past-dated allocation staged directly in the store.
	past := seedAllocation(t, st, day(-3))
	if _, err := svc.Update(ctx, past.ID, allocation.UpdateParams{Purpose: &purpose}); !errors.Is(err, fleet.ErrUpdateWindowClosed) {
		t.Fatalf("expected ErrUpdateWindowClosed for past date, got %v", err)
	}

	// Missing allocation.
	if _, err := svc.Update(ctx, id.NewAllocationID(), allocation.UpdateParams{}); !errors.Is(err, fleet.ErrAllocationNotFound) {
		t.Fatalf("expected ErrAllocationNotFound, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	t.Parallel()
	svc, st := newService(t)
	ctx := context.Background()

	future, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(3)))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, future.ID); err != nil {
		t.Fatalf("delete future: %v", err)
	}
	if _, err := svc.Get(ctx, future.ID); !errors.Is(err, fleet.ErrAllocationNotFound) {
		t.Fatalf("expected ErrAllocationNotFound after delete, got %v", err)
	}

	// Allocation dated today: deletion blocked from the last moment of the
	// allocation date onward.
	today, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(0).Add(12*time.Hour)))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, today.ID); !errors.Is(err, fleet.ErrDeleteWindowClosed) {
		t.Fatalf("expected ErrDeleteWindowClosed for today, got %v", err)
	}

	// Past-dated allocation.
	past := seedAllocation(t, st, day(-1))
	if err := svc.Delete(ctx, past.ID); !errors.Is(err, fleet.ErrDeleteWindowClosed) {
		t.Fatalf("expected ErrDeleteWindowClosed for past date, got %v", err)
	}

	// Missing allocation.
	if err := svc.Delete(ctx, id.NewAllocationID()); !errors.Is(err, fleet.ErrAllocationNotFound) {
		t.Fatalf("expected ErrAllocationNotFound, got %v", err)
	}
}

// ──────────────────────────────────────────────────
// List / Stats
// ──────────────────────────────────────────────────

func TestListDefaultsAndClamping(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	// 12 allocations on distinct future days.
	for i := 1; i <= 12; i++ {
		if _, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(i))); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		opts      allocation.ListOpts
		wantCount int
	}{
		{"default limit", allocation.ListOpts{}, 10},
		{"explicit limit", allocation.ListOpts{Limit: 3}, 3},
		{"limit clamped to max", allocation.ListOpts{Limit: 500}, 12},
		{"negative skip floored", allocation.ListOpts{Skip: -5, Limit: 100}, 12},
		{"skip applied", allocation.ListOpts{Skip: 10, Limit: 100}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.List(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != tt.wantCount {
				t.Fatalf("got %d, want %d", len(list), tt.wantCount)
			}
		})
	}

	// Descending date order.
	list, err := svc.List(ctx, allocation.ListOpts{Limit: 100})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(list); i++ {
		if list[i].AllocationDate.After(list[i-1].AllocationDate) {
			t.Fatalf("list not sorted descending at index %d", i)
		}
	}
}

func TestStatsTotalsMatchBreakdown(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	vehicleID := id.NewVehicleID()
	for i := 1; i <= 4; i++ {
		created, err := svc.Create(ctx, createParams(vehicleID, day(i)))
		if err != nil {
			t.Fatal(err)
		}
		if i%2 == 0 {
			cancelled := allocation.StatusCancelled
			if _, err := svc.Update(ctx, created.ID, allocation.UpdateParams{Status: &cancelled}); err != nil {
				t.Fatal(err)
			}
		}
	}

	stats, err := svc.Stats(ctx, allocation.StatsOpts{})
	if err != nil {
		t.Fatal(err)
	}

	var sum int64
	for _, count := range stats.StatusBreakdown {
		sum += count
	}
	if stats.TotalAllocations != sum {
		t.Fatalf("total %d != breakdown sum %d", stats.TotalAllocations, sum)
	}
	if stats.StatusBreakdown[allocation.StatusAllocated] != 2 {
		t.Fatalf("allocated = %d, want 2", stats.StatusBreakdown[allocation.StatusAllocated])
	}
	if stats.StatusBreakdown[allocation.StatusCancelled] != 2 {
		t.Fatalf("cancelled = %d, want 2", stats.StatusBreakdown[allocation.StatusCancelled])
	}
}

// ──────────────────────────────────────────────────
// Availability
// ──────────────────────────────────────────────────

func TestCheckAvailability(t *testing.T) {
	t.Parallel()
	svc, st := newService(t)
	ctx := context.Background()

	vehicles := make([]*vehicle.Vehicle, 0, 3)
	for i := 0; i < 3; i++ {
		v := &vehicle.Vehicle{
			ID:        id.NewVehicleID(),
			Brand:     "Toyota",
			Model:     "Camry",
			DriverID:  id.NewDriverID(),
			CreatedAt: time.Now().UTC(),
		}
		if err := st.CreateVehicle(ctx, v); err != nil {
			t.Fatal(err)
		}
		vehicles = append(vehicles, v)
	}

	// Book vehicle 0 for tomorrow; cancel a booking for vehicle 1.
	if _, err := svc.Create(ctx, createParams(vehicles[0].ID, day(1))); err != nil {
		t.Fatal(err)
	}
	booked, err := svc.Create(ctx, createParams(vehicles[1].ID, day(1)))
	if err != nil {
		t.Fatal(err)
	}
	cancelled := allocation.StatusCancelled
	if _, err := svc.Update(ctx, booked.ID, allocation.UpdateParams{Status: &cancelled}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.CheckAvailability(ctx, day(1))
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalVehicles != 3 {
		t.Fatalf("total = %d, want 3", got.TotalVehicles)
	}
	if got.AllocatedVehicles != 1 {
		t.Fatalf("allocated = %d, want 1", got.AllocatedVehicles)
	}
	if got.AvailableVehicles+got.AllocatedVehicles != got.TotalVehicles {
		t.Fatalf("available %d + allocated %d != total %d",
			got.AvailableVehicles, got.AllocatedVehicles, got.TotalVehicles)
	}
	for _, v := range got.Vehicles {
		if v.ID.String() == vehicles[0].ID.String() {
			t.Fatal("allocated vehicle listed as available")
		}
	}
	if got.Date != day(1).Format(time.DateOnly) {
		t.Fatalf("date = %q, want %q", got.Date, day(1).Format(time.DateOnly))
	}
}

// ──────────────────────────────────────────────────
// Middleware wiring
// ──────────────────────────────────────────────────

func TestServiceRunsMiddleware(t *testing.T) {
	t.Parallel()
	st := memory.New()

	var ops []string
	record := func(ctx context.Context, op *middleware.Operation, next middleware.Handler) error {
		ops = append(ops, op.Name)
		return next(ctx)
	}

	svc := allocation.NewService(st, st, allocation.WithMiddleware(record))
	ctx := context.Background()

	created, err := svc.Create(ctx, createParams(id.NewVehicleID(), day(1)))
	if err != nil {
		t.Fatal(err)
	}
	purpose := "mw"
	if _, err := svc.Update(ctx, created.ID, allocation.UpdateParams{Purpose: &purpose}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx, allocation.ListOpts{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Stats(ctx, allocation.StatsOpts{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckAvailability(ctx, day(1)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"allocation.create",
		"allocation.update",
		"allocation.get",
		"allocation.list",
		"allocation.stats",
		"allocation.availability",
		"allocation.delete",
	}
	if len(ops) != len(want) {
		t.Fatalf("recorded %d operations, want %d: %v", len(ops), len(want), ops)
	}
	for i, name := range want {
		if ops[i] != name {
			t.Fatalf("ops[%d] = %q, want %q", i, ops[i], name)
		}
	}
}
