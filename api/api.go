package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/seed"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// API wires all Forge-style HTTP handlers together for the fleet system.
type API struct {
	allocations *allocation.Service
	employees   *employee.Service
	drivers     *driver.Service
	vehicles    *vehicle.Service
	seeder      *seed.Seeder
	router      forge.Router
}

// New creates an API from the subsystem services.
func New(
	allocations *allocation.Service,
	employees *employee.Service,
	drivers *driver.Service,
	vehicles *vehicle.Service,
	seeder *seed.Seeder,
	router forge.Router,
) *API {
	return &API{
		allocations: allocations,
		employees:   employees,
		drivers:     drivers,
		vehicles:    vehicles,
		seeder:      seeder,
		router:      router,
	}
}

// Handler returns the fully assembled http.Handler with all routes.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	a.RegisterRoutes(a.router)
	return a.router.Handler()
}

// RegisterRoutes registers all fleet API routes into the given Forge router
// with full OpenAPI metadata.
func (a *API) RegisterRoutes(router forge.Router) {
	a.registerAllocationRoutes(router)
	a.registerVehicleRoutes(router)
	a.registerEmployeeRoutes(router)
	a.registerDriverRoutes(router)
	a.registerSeedRoutes(router)
}

// registerAllocationRoutes registers allocation lifecycle routes.
func (a *API) registerAllocationRoutes(router forge.Router) {
	g := router.Group("/allocations", forge.WithGroupTags("allocations"))

	_ = g.POST("/", a.createAllocation,
		forge.WithSummary("Create allocation"),
		forge.WithDescription("Books a vehicle for an employee on a date."),
		forge.WithOperationID("createAllocation"),
		forge.WithRequestSchema(CreateAllocationRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Created allocation", &allocation.Allocation{}),
		forge.WithErrorResponses(),
	)

	_ = g.GET("/", a.listAllocations,
		forge.WithSummary("List allocations"),
		forge.WithDescription("Returns allocations filtered by employee, vehicle, status, and date range, sorted by allocation date descending."),
		forge.WithOperationID("listAllocations"),
		forge.WithRequestSchema(ListAllocationsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Allocation list", []*allocation.Allocation{}),
		forge.WithErrorResponses(),
	)

	_ = g.GET("/stats", a.allocationStats,
		forge.WithSummary("Allocation stats"),
		forge.WithDescription("Returns the total allocation count and a per-status breakdown."),
		forge.WithOperationID("allocationStats"),
		forge.WithRequestSchema(AllocationStatsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Allocation statistics", &allocation.Stats{}),
		forge.WithErrorResponses(),
	)

	_ = g.GET("/:allocationId", a.getAllocation,
		forge.WithSummary("Get allocation"),
		forge.WithDescription("Returns details of a specific allocation."),
		forge.WithOperationID("getAllocation"),
		forge.WithResponseSchema(http.StatusOK, "Allocation details", &allocation.Allocation{}),
		forge.WithErrorResponses(),
	)

	_ = g.PUT("/:allocationId", a.updateAllocation,
		forge.WithSummary("Update allocation"),
		forge.WithDescription("Applies a partial update while the allocation date is still in the future."),
		forge.WithOperationID("updateAllocation"),
		forge.WithRequestSchema(UpdateAllocationRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated allocation", &allocation.Allocation{}),
		forge.WithErrorResponses(),
	)

	_ = g.DELETE("/:allocationId", a.deleteAllocation,
		forge.WithSummary("Delete allocation"),
		forge.WithDescription("Removes an allocation while the deletion window is still open."),
		forge.WithOperationID("deleteAllocation"),
		forge.WithResponseSchema(http.StatusOK, "Deletion confirmation", DeleteAllocationResponse{}),
		forge.WithErrorResponses(),
	)
}

// registerVehicleRoutes registers vehicle creation and availability routes.
func (a *API) registerVehicleRoutes(router forge.Router) {
	g := router.Group("/vehicles", forge.WithGroupTags("vehicles"))

	_ = g.POST("/", a.createVehicle,
		forge.WithSummary("Create vehicle"),
		forge.WithDescription("Registers a vehicle and assigns it to a driver."),
		forge.WithOperationID("createVehicle"),
		forge.WithRequestSchema(CreateVehicleRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Created vehicle", &vehicle.Vehicle{}),
		forge.WithErrorResponses(),
	)

	_ = g.GET("/availability/:date", a.vehicleAvailability,
		forge.WithSummary("Vehicle availability"),
		forge.WithDescription("Returns the vehicles free on a calendar date with summary counts."),
		forge.WithOperationID("vehicleAvailability"),
		forge.WithResponseSchema(http.StatusOK, "Availability report", &allocation.Availability{}),
		forge.WithErrorResponses(),
	)
}

// registerEmployeeRoutes registers employee creation routes.
func (a *API) registerEmployeeRoutes(router forge.Router) {
	g := router.Group("/employees", forge.WithGroupTags("employees"))

	_ = g.POST("/", a.createEmployee,
		forge.WithSummary("Create employee"),
		forge.WithDescription("Registers a new employee."),
		forge.WithOperationID("createEmployee"),
		forge.WithRequestSchema(CreateEmployeeRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Created employee", &employee.Employee{}),
		forge.WithErrorResponses(),
	)
}

// registerDriverRoutes registers driver creation routes.
func (a *API) registerDriverRoutes(router forge.Router) {
	g := router.Group("/drivers", forge.WithGroupTags("drivers"))

	_ = g.POST("/", a.createDriver,
		forge.WithSummary("Create driver"),
		forge.WithDescription("Registers a new driver."),
		forge.WithOperationID("createDriver"),
		forge.WithRequestSchema(CreateDriverRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Created driver", &driver.Driver{}),
		forge.WithErrorResponses(),
	)
}

// registerSeedRoutes registers the development fixture loader.
func (a *API) registerSeedRoutes(router forge.Router) {
	g := router.Group("/seed", forge.WithGroupTags("seed"))

	_ = g.POST("", a.seedData,
		forge.WithSummary("Seed fixtures"),
		forge.WithDescription("Populates the store with development fixture data."),
		forge.WithOperationID("seedData"),
		forge.WithResponseSchema(http.StatusOK, "Seed confirmation", SeedResponse{}),
		forge.WithErrorResponses(),
	)
}
