package bunstore

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// ── Allocation model ──────────────────────────────────────────────

type allocationModel struct {
	bun.BaseModel `bun:"table:allocations"`

	ID             string    `bun:"id,pk"`
	EmployeeID     string    `bun:"employee_id,notnull"`
	VehicleID      string    `bun:"vehicle_id,notnull"`
	AllocationDate time.Time `bun:"allocation_date,notnull"`
	// AllocationDay backs the partial unique index on (vehicle_id,
	// allocation_day) for non-cancelled allocations.
	AllocationDay time.Time `bun:"allocation_day,notnull,type:date"`
	Purpose       string    `bun:"purpose,notnull,default:''"`
	Status        string    `bun:"status,notnull,default:'allocated'"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func toAllocationModel(a *allocation.Allocation) *allocationModel {
	return &allocationModel{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		VehicleID:      a.VehicleID.String(),
		AllocationDate: a.AllocationDate.UTC(),
		AllocationDay:  allocation.StartOfDay(a.AllocationDate),
		Purpose:        a.Purpose,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func fromAllocationModel(m *allocationModel) (*allocation.Allocation, error) {
	parsedID, err := id.ParseAllocationID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse allocation id %q: %w", m.ID, err)
	}

	parsedEmployee, err := id.ParseEmployeeID(m.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse employee id %q: %w", m.EmployeeID, err)
	}

	parsedVehicle, err := id.ParseVehicleID(m.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse vehicle id %q: %w", m.VehicleID, err)
	}

	return &allocation.Allocation{
		Entity: fleet.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:             parsedID,
		EmployeeID:     parsedEmployee,
		VehicleID:      parsedVehicle,
		AllocationDate: m.AllocationDate,
		Purpose:        m.Purpose,
		Status:         allocation.Status(m.Status),
	}, nil
}

// ── Employee model ────────────────────────────────────────────────

type employeeModel struct {
	bun.BaseModel `bun:"table:employees"`

	ID         string    `bun:"id,pk"`
	Name       string    `bun:"name,notnull,default:''"`
	Department string    `bun:"department,notnull,default:''"`
	Email      string    `bun:"email,notnull,default:''"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func toEmployeeModel(e *employee.Employee) *employeeModel {
	return &employeeModel{
		ID:         e.ID.String(),
		Name:       e.Name,
		Department: e.Department,
		Email:      e.Email,
		CreatedAt:  e.CreatedAt,
	}
}

func fromEmployeeModel(m *employeeModel) (*employee.Employee, error) {
	parsedID, err := id.ParseEmployeeID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse employee id %q: %w", m.ID, err)
	}

	return &employee.Employee{
		ID:         parsedID,
		Name:       m.Name,
		Department: m.Department,
		Email:      m.Email,
		CreatedAt:  m.CreatedAt,
	}, nil
}

// ── Driver model ──────────────────────────────────────────────────

type driverModel struct {
	bun.BaseModel `bun:"table:drivers"`

	ID            string    `bun:"id,pk"`
	Name          string    `bun:"name,notnull,default:''"`
	LicenseNumber string    `bun:"license_number,notnull,default:''"`
	ContactNumber string    `bun:"contact_number,notnull,default:''"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func toDriverModel(d *driver.Driver) *driverModel {
	return &driverModel{
		ID:            d.ID.String(),
		Name:          d.Name,
		LicenseNumber: d.LicenseNumber,
		ContactNumber: d.ContactNumber,
		CreatedAt:     d.CreatedAt,
	}
}

func fromDriverModel(m *driverModel) (*driver.Driver, error) {
	parsedID, err := id.ParseDriverID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse driver id %q: %w", m.ID, err)
	}

	return &driver.Driver{
		ID:            parsedID,
		Name:          m.Name,
		LicenseNumber: m.LicenseNumber,
		ContactNumber: m.ContactNumber,
		CreatedAt:     m.CreatedAt,
	}, nil
}

// ── Vehicle model ─────────────────────────────────────────────────

type vehicleModel struct {
	bun.BaseModel `bun:"table:vehicles"`

	ID                 string    `bun:"id,pk"`
	Brand              string    `bun:"brand,notnull,default:''"`
	Model              string    `bun:"model,notnull,default:''"`
	RegistrationNumber string    `bun:"registration_number,notnull,default:''"`
	DriverID           string    `bun:"driver_id,notnull,unique"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func toVehicleModel(v *vehicle.Vehicle) *vehicleModel {
	return &vehicleModel{
		ID:                 v.ID.String(),
		Brand:              v.Brand,
		Model:              v.Model,
		RegistrationNumber: v.RegistrationNumber,
		DriverID:           v.DriverID.String(),
		CreatedAt:          v.CreatedAt,
	}
}

func fromVehicleModel(m *vehicleModel) (*vehicle.Vehicle, error) {
	parsedID, err := id.ParseVehicleID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse vehicle id %q: %w", m.ID, err)
	}

	parsedDriver, err := id.ParseDriverID(m.DriverID)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: parse driver id %q: %w", m.DriverID, err)
	}

	return &vehicle.Vehicle{
		ID:                 parsedID,
		Brand:              m.Brand,
		Model:              m.Model,
		RegistrationNumber: m.RegistrationNumber,
		DriverID:           parsedDriver,
		CreatedAt:          m.CreatedAt,
	}, nil
}
