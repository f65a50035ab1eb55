// Package seed loads development fixture data through the subsystem
// services, so every seeded record passes the same rules as API traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// Seeder populates the store with a small consistent fixture set.
type Seeder struct {
	allocations *allocation.Service
	employees   *employee.Service
	drivers     *driver.Service
	vehicles    *vehicle.Service
	logger      *slog.Logger
}

// New creates a Seeder over the subsystem services.
func New(
	allocations *allocation.Service,
	employees *employee.Service,
	drivers *driver.Service,
	vehicles *vehicle.Service,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		allocations: allocations,
		employees:   employees,
		drivers:     drivers,
		vehicles:    vehicles,
		logger:      logger,
	}
}

// Seed inserts the fixture employees, drivers, vehicles, and two future
// allocations. It is intended for development and demo environments; each
// run inserts a fresh copy of the fixture set.
func (s *Seeder) Seed(ctx context.Context) error {
	employees := []employee.CreateParams{
		{Name: "Dave Smith", Email: "john@example.com", Department: "Sales"},
		{Name: "Dave Chappelle", Email: "jane@example.com", Department: "Marketing"},
		{Name: "Boris Johnson", Email: "bob@example.com", Department: "IT"},
	}

	seededEmployees := make([]*employee.Employee, 0, len(employees))
	for _, p := range employees {
		e, err := s.employees.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("seed: create employee %q: %w", p.Name, err)
		}
		seededEmployees = append(seededEmployees, e)
	}

	drivers := []driver.CreateParams{
		{Name: "Charlie Manjaro", LicenseNumber: "DL12345"},
		{Name: "Alex Brown", LicenseNumber: "DL67890"},
	}

	seededDrivers := make([]*driver.Driver, 0, len(drivers))
	for _, p := range drivers {
		d, err := s.drivers.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("seed: create driver %q: %w", p.Name, err)
		}
		seededDrivers = append(seededDrivers, d)
	}

	vehicles := []vehicle.CreateParams{
		{Brand: "Toyota", Model: "Camry", RegistrationNumber: "ABC123", DriverID: seededDrivers[0].ID},
		{Brand: "Honda", Model: "Civic", RegistrationNumber: "XYZ789", DriverID: seededDrivers[1].ID},
	}

	seededVehicles := make([]*vehicle.Vehicle, 0, len(vehicles))
	for _, p := range vehicles {
		v, err := s.vehicles.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("seed: create vehicle %q: %w", p.RegistrationNumber, err)
		}
		seededVehicles = append(seededVehicles, v)
	}

	today := allocation.StartOfDay(time.Now().UTC())
	allocations := []allocation.CreateParams{
		{
			EmployeeID:     seededEmployees[0].ID,
			VehicleID:      seededVehicles[0].ID,
			AllocationDate: today.AddDate(0, 0, 1),
			Purpose:        "Business Trip",
		},
		{
			EmployeeID:     seededEmployees[1].ID,
			VehicleID:      seededVehicles[1].ID,
			AllocationDate: today.AddDate(0, 0, 2),
			Purpose:        "Client Meeting",
		},
	}

	for _, p := range allocations {
		if _, err := s.allocations.Create(ctx, p); err != nil {
			return fmt.Errorf("seed: create allocation for %s: %w", p.AllocationDate.Format(time.DateOnly), err)
		}
	}

	s.logger.Info("fixture data seeded",
		slog.Int("employees", len(seededEmployees)),
		slog.Int("drivers", len(seededDrivers)),
		slog.Int("vehicles", len(seededVehicles)),
		slog.Int("allocations", len(allocations)),
	)
	return nil
}
