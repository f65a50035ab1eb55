package api

import (
	"fmt"
	"time"

	"github.com/nishorgo/vehicle-allocation/allocation"
)

// CreateAllocationRequest is the body of POST /allocations/.
type CreateAllocationRequest struct {
	EmployeeID     string    `json:"employee_id"`
	VehicleID      string    `json:"vehicle_id"`
	AllocationDate time.Time `json:"allocation_date"`
	Purpose        string    `json:"purpose,omitempty"`
}

// UpdateAllocationRequest is the body of PUT /allocations/:allocationId.
// Only non-null fields are applied.
type UpdateAllocationRequest struct {
	Purpose *string `json:"purpose"`
	Status  *string `json:"status"`
}

// GetAllocationRequest is the (empty) request of GET /allocations/:allocationId.
type GetAllocationRequest struct{}

// DeleteAllocationRequest is the (empty) request of DELETE /allocations/:allocationId.
type DeleteAllocationRequest struct{}

// ListAllocationsRequest carries the query parameters of GET /allocations/.
type ListAllocationsRequest struct {
	EmployeeID string `query:"employee_id" json:"employee_id,omitempty"`
	VehicleID  string `query:"vehicle_id"  json:"vehicle_id,omitempty"`
	Status     string `query:"status"      json:"status,omitempty"`
	StartDate  string `query:"start_date"  json:"start_date,omitempty"`
	EndDate    string `query:"end_date"    json:"end_date,omitempty"`
	Skip       int    `query:"skip"        json:"skip,omitempty"`
	Limit      int    `query:"limit"       json:"limit,omitempty"`
}

// AllocationStatsRequest carries the query parameters of GET /allocations/stats.
type AllocationStatsRequest struct {
	StartDate string `query:"start_date" json:"start_date,omitempty"`
	EndDate   string `query:"end_date"   json:"end_date,omitempty"`
}

// VehicleAvailabilityRequest is the (empty) request of
// GET /vehicles/availability/:date.
type VehicleAvailabilityRequest struct{}

// CreateEmployeeRequest is the body of POST /employees/.
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

// CreateDriverRequest is the body of POST /drivers/.
type CreateDriverRequest struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	ContactNumber string `json:"contact_number"`
}

// CreateVehicleRequest is the body of POST /vehicles/.
type CreateVehicleRequest struct {
	Brand              string `json:"brand"`
	Model              string `json:"model"`
	RegistrationNumber string `json:"registration_number"`
	DriverID           string `json:"driver_id"`
}

// DeleteAllocationResponse confirms a deletion.
type DeleteAllocationResponse struct {
	Message string `json:"message"`
}

// SeedResponse confirms fixture loading.
type SeedResponse struct {
	Message string `json:"message"`
}

// defaultLimit applies the default page size when the caller omits limit.
// The service clamps the upper bound.
func defaultLimit(limit int) int {
	if limit <= 0 {
		return allocation.DefaultLimit
	}
	return limit
}

// parseDate parses an optional YYYY-MM-DD query value. Empty input yields
// nil without error.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	t = t.UTC()
	return &t, nil
}

// statusFromString validates an optional status query value.
func statusFromString(s string) (allocation.Status, error) {
	if s == "" {
		return "", nil
	}
	st := allocation.Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}
