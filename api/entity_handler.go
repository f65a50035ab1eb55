package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

func (a *API) createEmployee(ctx forge.Context, req *CreateEmployeeRequest) (*employee.Employee, error) {
	created, err := a.employees.Create(ctx.Context(), employee.CreateParams{
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	return created, ctx.JSON(http.StatusOK, created)
}

func (a *API) createDriver(ctx forge.Context, req *CreateDriverRequest) (*driver.Driver, error) {
	created, err := a.drivers.Create(ctx.Context(), driver.CreateParams{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}

	return created, ctx.JSON(http.StatusOK, created)
}

func (a *API) createVehicle(ctx forge.Context, req *CreateVehicleRequest) (*vehicle.Vehicle, error) {
	driverID, err := id.ParseDriverID(req.DriverID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid driver ID: %v", err))
	}

	created, err := a.vehicles.Create(ctx.Context(), vehicle.CreateParams{
		Brand:              req.Brand,
		Model:              req.Model,
		RegistrationNumber: req.RegistrationNumber,
		DriverID:           driverID,
	})
	if err != nil {
		return nil, mapDomainError(err)
	}

	return created, ctx.JSON(http.StatusOK, created)
}
