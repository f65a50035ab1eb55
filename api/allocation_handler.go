package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/id"
)

func (a *API) createAllocation(ctx forge.Context, req *CreateAllocationRequest) (*allocation.Allocation, error) {
	employeeID, err := id.ParseEmployeeID(req.EmployeeID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid employee ID: %v", err))
	}
	vehicleID, err := id.ParseVehicleID(req.VehicleID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid vehicle ID: %v", err))
	}

	created, err := a.allocations.Create(ctx.Context(), allocation.CreateParams{
		EmployeeID:     employeeID,
		VehicleID:      vehicleID,
		AllocationDate: req.AllocationDate,
		Purpose:        req.Purpose,
	})
	if err != nil {
		return nil, mapDomainError(err)
	}

	return created, ctx.JSON(http.StatusOK, created)
}

func (a *API) updateAllocation(ctx forge.Context, req *UpdateAllocationRequest) (*allocation.Allocation, error) {
	allocID, err := id.ParseAllocationID(ctx.Param("allocationId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid allocation ID: %v", err))
	}

	params := allocation.UpdateParams{Purpose: req.Purpose}
	if req.Status != nil && *req.Status != "" {
		st, stErr := statusFromString(*req.Status)
		if stErr != nil {
			return nil, forge.BadRequest(stErr.Error())
		}
		params.Status = &st
	}

	updated, err := a.allocations.Update(ctx.Context(), allocID, params)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return updated, ctx.JSON(http.StatusOK, updated)
}

func (a *API) deleteAllocation(ctx forge.Context, _ *DeleteAllocationRequest) (*DeleteAllocationResponse, error) {
	allocID, err := id.ParseAllocationID(ctx.Param("allocationId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid allocation ID: %v", err))
	}

	if err := a.allocations.Delete(ctx.Context(), allocID); err != nil {
		return nil, mapDomainError(err)
	}

	resp := &DeleteAllocationResponse{Message: "Allocation deleted successfully"}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) getAllocation(ctx forge.Context, _ *GetAllocationRequest) (*allocation.Allocation, error) {
	allocID, err := id.ParseAllocationID(ctx.Param("allocationId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid allocation ID: %v", err))
	}

	found, err := a.allocations.Get(ctx.Context(), allocID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	return found, ctx.JSON(http.StatusOK, found)
}

func (a *API) listAllocations(ctx forge.Context, req *ListAllocationsRequest) ([]*allocation.Allocation, error) {
	opts := allocation.ListOpts{
		Skip:  req.Skip,
		Limit: defaultLimit(req.Limit),
	}

	if req.EmployeeID != "" {
		employeeID, err := id.ParseEmployeeID(req.EmployeeID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid employee ID: %v", err))
		}
		opts.EmployeeID = employeeID
	}
	if req.VehicleID != "" {
		vehicleID, err := id.ParseVehicleID(req.VehicleID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid vehicle ID: %v", err))
		}
		opts.VehicleID = vehicleID
	}

	status, err := statusFromString(req.Status)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	opts.Status = status

	if opts.Start, err = parseDate(req.StartDate); err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	if opts.End, err = parseDate(req.EndDate); err != nil {
		return nil, forge.BadRequest(err.Error())
	}

	list, err := a.allocations.List(ctx.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}

	return list, ctx.JSON(http.StatusOK, list)
}

func (a *API) allocationStats(ctx forge.Context, req *AllocationStatsRequest) (*allocation.Stats, error) {
	var opts allocation.StatsOpts
	var err error

	if opts.Start, err = parseDate(req.StartDate); err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	if opts.End, err = parseDate(req.EndDate); err != nil {
		return nil, forge.BadRequest(err.Error())
	}

	stats, err := a.allocations.Stats(ctx.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("allocation stats: %w", err)
	}

	return stats, ctx.JSON(http.StatusOK, stats)
}

func (a *API) vehicleAvailability(ctx forge.Context, _ *VehicleAvailabilityRequest) (*allocation.Availability, error) {
	day, err := time.Parse(time.DateOnly, ctx.Param("date"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", ctx.Param("date")))
	}

	availability, err := a.allocations.CheckAvailability(ctx.Context(), day.UTC())
	if err != nil {
		return nil, fmt.Errorf("check vehicle availability: %w", err)
	}

	return availability, ctx.JSON(http.StatusOK, availability)
}

// mapDomainError converts fleet sentinel errors to forge HTTP errors.
// Conflicts map to 401 to keep the original service's wire contract.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fleet.ErrPastDate):
		return forge.BadRequest("Cannot create allocation for past dates")
	case errors.Is(err, fleet.ErrUpdateWindowClosed):
		return forge.BadRequest("Cannot update on allocated date and after")
	case errors.Is(err, fleet.ErrDeleteWindowClosed):
		return forge.BadRequest("Cannot delete on allocated date and after")
	case errors.Is(err, fleet.ErrVehicleAllocated):
		return forge.Unauthorized("Vehicle is already allocated for this date")
	case errors.Is(err, fleet.ErrDriverAssigned):
		return forge.BadRequest("Driver is already assigned to another vehicle")
	case isNotFound(err):
		return forge.NotFound(err.Error())
	default:
		return err
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, fleet.ErrAllocationNotFound) ||
		errors.Is(err, fleet.ErrEmployeeNotFound) ||
		errors.Is(err, fleet.ErrDriverNotFound) ||
		errors.Is(err, fleet.ErrVehicleNotFound)
}
