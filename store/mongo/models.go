package mongo

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// ── Allocation model ──────────────────────────────────────────────

type allocationModel struct {
	grove.BaseModel `grove:"table:allocations"`

	ID             string    `grove:"id,pk"            bson:"_id"`
	EmployeeID     string    `grove:"employee_id,notnull" bson:"employee_id"`
	VehicleID      string    `grove:"vehicle_id,notnull"  bson:"vehicle_id"`
	AllocationDate time.Time `grove:"allocation_date,notnull" bson:"allocation_date"`
	// AllocationDay is the date truncated to midnight UTC; it backs the
	// unique (vehicle_id, allocation_day) index.
	AllocationDay time.Time `grove:"allocation_day,notnull" bson:"allocation_day"`
	Purpose       string    `grove:"purpose"          bson:"purpose"`
	Status        string    `grove:"status,notnull"   bson:"status"`
	CreatedAt     time.Time `grove:"created_at,notnull" bson:"created_at"`
	UpdatedAt     time.Time `grove:"updated_at,notnull" bson:"updated_at"`
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
		return nil, fmt.Errorf("fleet/mongo: parse allocation id %q: %w", m.ID, err)
	}

	parsedEmployee, err := id.ParseEmployeeID(m.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("fleet/mongo: parse employee id %q: %w", m.EmployeeID, err)
	}

	parsedVehicle, err := id.ParseVehicleID(m.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("fleet/mongo: parse vehicle id %q: %w", m.VehicleID, err)
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
	grove.BaseModel `grove:"table:employees"`

	ID         string    `grove:"id,pk"          bson:"_id"`
	Name       string    `grove:"name"           bson:"name"`
	Department string    `grove:"department"     bson:"department"`
	Email      string    `grove:"email"          bson:"email"`
	CreatedAt  time.Time `grove:"created_at,notnull" bson:"created_at"`
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
		return nil, fmt.Errorf("fleet/mongo: parse employee id %q: %w", m.ID, err)
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
	grove.BaseModel `grove:"table:drivers"`

	ID            string    `grove:"id,pk"          bson:"_id"`
	Name          string    `grove:"name"           bson:"name"`
	LicenseNumber string    `grove:"license_number" bson:"license_number"`
	ContactNumber string    `grove:"contact_number" bson:"contact_number"`
	CreatedAt     time.Time `grove:"created_at,notnull" bson:"created_at"`
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
		return nil, fmt.Errorf("fleet/mongo: parse driver id %q: %w", m.ID, err)
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
	grove.BaseModel `grove:"table:vehicles"`

	ID                 string    `grove:"id,pk"          bson:"_id"`
	Brand              string    `grove:"brand"          bson:"brand"`
	Model              string    `grove:"model"          bson:"model"`
	RegistrationNumber string    `grove:"registration_number" bson:"registration_number"`
	DriverID           string    `grove:"driver_id,notnull,unique" bson:"driver_id"`
	CreatedAt          time.Time `grove:"created_at,notnull" bson:"created_at"`
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
		return nil, fmt.Errorf("fleet/mongo: parse vehicle id %q: %w", m.ID, err)
	}

	parsedDriver, err := id.ParseDriverID(m.DriverID)
	if err != nil {
		return nil, fmt.Errorf("fleet/mongo: parse driver id %q: %w", m.DriverID, err)
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
