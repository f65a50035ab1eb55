package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/employee"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// Ensure Store implements store.Store at compile time.
// We can't import store here (import cycle), so we verify each subsystem.
var (
	_ allocation.Store = (*Store)(nil)
	_ employee.Store   = (*Store)(nil)
	_ driver.Store     = (*Store)(nil)
	_ vehicle.Store    = (*Store)(nil)
)

// Store is a fully in-memory implementation of store.Store.
// Safe for concurrent access. Intended for unit testing and development.
type Store struct {
	mu sync.RWMutex

	allocations map[string]*allocation.Allocation
	employees   map[string]*employee.Employee
	drivers     map[string]*driver.Driver
	vehicles    map[string]*vehicle.Vehicle
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		allocations: make(map[string]*allocation.Allocation),
		employees:   make(map[string]*employee.Employee),
		drivers:     make(map[string]*driver.Driver),
		vehicles:    make(map[string]*vehicle.Vehicle),
	}
}

// ──────────────────────────────────────────────────
// Lifecycle — Migrate / Ping / Close
// ──────────────────────────────────────────────────

// Migrate is a no-op for the memory store.
func (m *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Allocation Store
// ──────────────────────────────────────────────────

// sameDay reports whether t falls on the calendar day containing day.
func sameDay(t, day time.Time) bool {
	start := allocation.StartOfDay(day)
	return !t.UTC().Before(start) && !t.UTC().After(allocation.EndOfDay(day))
}

// CreateAllocation persists a new allocation. The uniqueness of
// (vehicle, day) across non-cancelled allocations is enforced under the
// store lock, mirroring the backends' unique indexes.
func (m *Store) CreateAllocation(_ context.Context, a *allocation.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.Status != allocation.StatusCancelled {
		for _, other := range m.allocations {
			if other.Status == allocation.StatusCancelled {
				continue
			}
			if other.VehicleID.String() == a.VehicleID.String() && sameDay(other.AllocationDate, a.AllocationDate) {
				return fleet.ErrVehicleAllocated
			}
		}
	}

	cp := *a
	m.allocations[a.ID.String()] = &cp
	return nil
}

// GetAllocation retrieves an allocation by ID.
func (m *Store) GetAllocation(_ context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.allocations[allocID.String()]
	if !ok {
		return nil, fleet.ErrAllocationNotFound
	}
	cp := *a
	return &cp, nil
}

// UpdateAllocation persists changes to an existing allocation. Like the
// backends' partial unique index, it rejects an update that would leave two
// active allocations on the same vehicle and day (e.g. re-activating a
// cancelled booking into an occupied slot).
func (m *Store) UpdateAllocation(_ context.Context, a *allocation.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := a.ID.String()
	if _, ok := m.allocations[key]; !ok {
		return fleet.ErrAllocationNotFound
	}

	if a.Status != allocation.StatusCancelled {
		for otherKey, other := range m.allocations {
			if otherKey == key || other.Status == allocation.StatusCancelled {
				continue
			}
			if other.VehicleID.String() == a.VehicleID.String() && sameDay(other.AllocationDate, a.AllocationDate) {
				return fleet.ErrVehicleAllocated
			}
		}
	}

	cp := *a
	m.allocations[key] = &cp
	return nil
}

// DeleteAllocation removes an allocation by ID.
func (m *Store) DeleteAllocation(_ context.Context, allocID id.AllocationID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := allocID.String()
	if _, ok := m.allocations[key]; !ok {
		return fleet.ErrAllocationNotFound
	}
	delete(m.allocations, key)
	return nil
}

// matchesList reports whether a passes every filter in opts.
func matchesList(a *allocation.Allocation, opts allocation.ListOpts) bool {
	if !opts.EmployeeID.IsNil() && a.EmployeeID.String() != opts.EmployeeID.String() {
		return false
	}
	if !opts.VehicleID.IsNil() && a.VehicleID.String() != opts.VehicleID.String() {
		return false
	}
	if opts.Status != "" && a.Status != opts.Status {
		return false
	}

	at := a.AllocationDate.UTC()
	switch {
	case opts.Start != nil && opts.End != nil:
		if at.Before(opts.Start.UTC()) || at.After(opts.End.UTC()) {
			return false
		}
	case opts.Start != nil:
		if at.Before(allocation.StartOfDay(*opts.Start)) {
			return false
		}
	case opts.End != nil:
		if at.After(allocation.EndOfDay(*opts.End)) {
			return false
		}
	}
	return true
}

// ListAllocations returns allocations matching opts, sorted by allocation
// date descending.
func (m *Store) ListAllocations(_ context.Context, opts allocation.ListOpts) ([]*allocation.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*allocation.Allocation, 0, len(m.allocations))
	for _, a := range m.allocations {
		if !matchesList(a, opts) {
			continue
		}
		cp := *a
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, k int) bool {
		return result[i].AllocationDate.After(result[k].AllocationDate)
	})

	// Apply skip / limit.
	if opts.Skip > 0 {
		if opts.Skip >= len(result) {
			return nil, nil
		}
		result = result[opts.Skip:]
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result, nil
}

// CountAllocationsByStatus returns per-status allocation counts over the
// optionally date-bounded set. The range applies only when both bounds are
// set.
func (m *Store) CountAllocationsByStatus(_ context.Context, opts allocation.StatsOpts) (map[allocation.Status]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	breakdown := make(map[allocation.Status]int64)
	for _, a := range m.allocations {
		if opts.Start != nil && opts.End != nil {
			at := a.AllocationDate.UTC()
			if at.Before(allocation.StartOfDay(*opts.Start)) || at.After(allocation.EndOfDay(*opts.End)) {
				continue
			}
		}
		breakdown[a.Status]++
	}
	return breakdown, nil
}

// FindActiveAllocation returns the non-cancelled allocation for the vehicle
// on the given calendar day.
func (m *Store) FindActiveAllocation(_ context.Context, vehicleID id.VehicleID, day time.Time) (*allocation.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.allocations {
		if a.Status == allocation.StatusCancelled {
			continue
		}
		if a.VehicleID.String() == vehicleID.String() && sameDay(a.AllocationDate, day) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fleet.ErrAllocationNotFound
}

// ListAllocatedVehicles returns the distinct vehicle references with a
// non-cancelled allocation on the given calendar day.
func (m *Store) ListAllocatedVehicles(_ context.Context, day time.Time) ([]id.VehicleID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	var result []id.VehicleID
	for _, a := range m.allocations {
		if a.Status == allocation.StatusCancelled {
			continue
		}
		if !sameDay(a.AllocationDate, day) {
			continue
		}
		key := a.VehicleID.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, a.VehicleID)
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Employee Store
// ──────────────────────────────────────────────────

// CreateEmployee persists a new employee.
func (m *Store) CreateEmployee(_ context.Context, e *employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *e
	m.employees[e.ID.String()] = &cp
	return nil
}

// GetEmployee retrieves an employee by ID.
func (m *Store) GetEmployee(_ context.Context, employeeID id.EmployeeID) (*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[employeeID.String()]
	if !ok {
		return nil, fleet.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

// ──────────────────────────────────────────────────
// Driver Store
// ──────────────────────────────────────────────────

// CreateDriver persists a new driver.
func (m *Store) CreateDriver(_ context.Context, d *driver.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *d
	m.drivers[d.ID.String()] = &cp
	return nil
}

// GetDriver retrieves a driver by ID.
func (m *Store) GetDriver(_ context.Context, driverID id.DriverID) (*driver.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.drivers[driverID.String()]
	if !ok {
		return nil, fleet.ErrDriverNotFound
	}
	cp := *d
	return &cp, nil
}

// ──────────────────────────────────────────────────
// Vehicle Store
// ──────────────────────────────────────────────────

// CreateVehicle persists a new vehicle. The one-vehicle-per-driver
// constraint is enforced under the store lock.
func (m *Store) CreateVehicle(_ context.Context, v *vehicle.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.vehicles {
		if other.DriverID.String() == v.DriverID.String() {
			return fleet.ErrDriverAssigned
		}
	}

	cp := *v
	m.vehicles[v.ID.String()] = &cp
	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (m *Store) GetVehicle(_ context.Context, vehicleID id.VehicleID) (*vehicle.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vehicles[vehicleID.String()]
	if !ok {
		return nil, fleet.ErrVehicleNotFound
	}
	cp := *v
	return &cp, nil
}

// ListVehicles returns all vehicles sorted by creation time.
func (m *Store) ListVehicles(_ context.Context) ([]*vehicle.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*vehicle.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		cp := *v
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.Before(result[k].CreatedAt)
	})

	return result, nil
}

// FindVehicleByDriver returns the vehicle the driver is assigned to.
func (m *Store) FindVehicleByDriver(_ context.Context, driverID id.DriverID) (*vehicle.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.vehicles {
		if v.DriverID.String() == driverID.String() {
			cp := *v
			return &cp, nil
		}
	}
	return nil, fleet.ErrVehicleNotFound
}
