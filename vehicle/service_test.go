package vehicle_test

import (
	"context"
	"errors"
	"testing"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/store/memory"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

func TestCreate(t *testing.T) {
	t.Parallel()
	svc := vehicle.NewService(memory.New())
	ctx := context.Background()

	created, err := svc.Create(ctx, vehicle.CreateParams{
		Brand:              "Toyota",
		Model:              "Camry",
		RegistrationNumber: "ABC123",
		DriverID:           id.NewDriverID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID.IsNil() {
		t.Fatal("created vehicle has nil ID")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("created vehicle missing timestamp")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RegistrationNumber != "ABC123" {
		t.Fatalf("registration = %q, want %q", got.RegistrationNumber, "ABC123")
	}
}

func TestCreateDriverAlreadyAssigned(t *testing.T) {
	t.Parallel()
	svc := vehicle.NewService(memory.New())
	ctx := context.Background()

	driverID := id.NewDriverID()

	if _, err := svc.Create(ctx, vehicle.CreateParams{Brand: "Toyota", DriverID: driverID}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, vehicle.CreateParams{Brand: "Honda", DriverID: driverID})
	if !errors.Is(err, fleet.ErrDriverAssigned) {
		t.Fatalf("expected ErrDriverAssigned, got %v", err)
	}

	// A different driver is fine.
	if _, err := svc.Create(ctx, vehicle.CreateParams{Brand: "Honda", DriverID: id.NewDriverID()}); err != nil {
		t.Fatalf("create with fresh driver: %v", err)
	}
}
