package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/middleware"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// Pagination bounds for list queries.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// CreateParams carries the caller-supplied fields for a new allocation.
type CreateParams struct {
	EmployeeID     id.EmployeeID
	VehicleID      id.VehicleID
	AllocationDate time.Time
	Purpose        string
}

// UpdateParams carries the optional fields of a partial allocation update.
// Only non-nil fields are applied.
type UpdateParams struct {
	Purpose *string
	Status  *Status
}

// Stats summarises the allocation set: a total plus a per-status breakdown.
// TotalAllocations always equals the sum of the breakdown values.
type Stats struct {
	TotalAllocations int64            `json:"total_allocations"`
	StatusBreakdown  map[Status]int64 `json:"status_breakdown"`
}

// Availability reports which vehicles are free on a given calendar date.
type Availability struct {
	Date              string             `json:"date"`
	TotalVehicles     int                `json:"total_vehicles"`
	AllocatedVehicles int                `json:"allocated_vehicles"`
	AvailableVehicles int                `json:"available_vehicles"`
	Vehicles          []*vehicle.Vehicle `json:"vehicles"`
}

// Service is the allocation rule engine. It validates date constraints and
// conflict rules against the store before mutating it; the store is the only
// authoritative state, so every operation reads fresh before deciding.
type Service struct {
	store    Store
	vehicles vehicle.Store
	logger   *slog.Logger
	mw       middleware.Middleware
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMiddleware wraps every service operation with the given middleware
// chain.
func WithMiddleware(mw middleware.Middleware) Option {
	return func(s *Service) {
		s.mw = mw
	}
}

// NewService creates an allocation service. The vehicle store is consulted
// by availability checks.
func NewService(store Store, vehicles vehicle.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		vehicles: vehicles,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// run executes fn through the configured middleware chain.
func (s *Service) run(ctx context.Context, op *middleware.Operation, fn middleware.Handler) error {
	if s.mw == nil {
		return fn(ctx)
	}
	return s.mw(ctx, op, fn)
}

// Create books a vehicle for an employee on a date. It fails with
// fleet.ErrPastDate when the date portion of the allocation date is earlier
// than today, and with fleet.ErrVehicleAllocated when a non-cancelled
// allocation for the same vehicle already exists on that calendar day.
//
// The read-then-write conflict check is not transactional; backends carry a
// uniqueness constraint on (vehicle, day, non-cancelled) so a concurrent
// duplicate still surfaces as fleet.ErrVehicleAllocated at write time.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Allocation, error) {
	var created *Allocation
	op := &middleware.Operation{Name: "allocation.create", VehicleID: p.VehicleID.String()}

	err := s.run(ctx, op, func(ctx context.Context) error {
		if StartOfDay(p.AllocationDate).Before(StartOfDay(time.Now().UTC())) {
			return fleet.ErrPastDate
		}

		existing, err := s.store.FindActiveAllocation(ctx, p.VehicleID, p.AllocationDate)
		if err != nil && !errors.Is(err, fleet.ErrAllocationNotFound) {
			return fmt.Errorf("allocation: conflict check: %w", err)
		}
		if existing != nil {
			return fleet.ErrVehicleAllocated
		}

		a := &Allocation{
			Entity:         fleet.NewEntity(),
			ID:             id.NewAllocationID(),
			EmployeeID:     p.EmployeeID,
			VehicleID:      p.VehicleID,
			AllocationDate: p.AllocationDate.UTC(),
			Purpose:        p.Purpose,
			Status:         StatusAllocated,
		}
		if err := s.store.CreateAllocation(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update to an allocation. It fails with
// fleet.ErrUpdateWindowClosed when the allocation date is today or earlier;
// edits are permitted only while the date is strictly in the future. The
// UpdatedAt timestamp is refreshed unconditionally on success.
func (s *Service) Update(ctx context.Context, allocID id.AllocationID, p UpdateParams) (*Allocation, error) {
	var updated *Allocation
	op := &middleware.Operation{Name: "allocation.update", AllocationID: allocID.String()}

	err := s.run(ctx, op, func(ctx context.Context) error {
		a, err := s.store.GetAllocation(ctx, allocID)
		if err != nil {
			return err
		}

		if !StartOfDay(a.AllocationDate).After(StartOfDay(time.Now().UTC())) {
			return fleet.ErrUpdateWindowClosed
		}

		if p.Purpose != nil {
			a.Purpose = *p.Purpose
		}
		if p.Status != nil {
			a.Status = *p.Status
		}
		a.Touch()

		if err := s.store.UpdateAllocation(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an allocation. It fails with fleet.ErrDeleteWindowClosed
// when the stored allocation instant falls on or before the end of today.
// This boundary is one instant later than the update window on purpose; the
// two checks must not be unified.
func (s *Service) Delete(ctx context.Context, allocID id.AllocationID) error {
	op := &middleware.Operation{Name: "allocation.delete", AllocationID: allocID.String()}

	return s.run(ctx, op, func(ctx context.Context) error {
		a, err := s.store.GetAllocation(ctx, allocID)
		if err != nil {
			return err
		}

		if !a.AllocationDate.UTC().After(EndOfDay(time.Now().UTC())) {
			return fleet.ErrDeleteWindowClosed
		}

		return s.store.DeleteAllocation(ctx, allocID)
	})
}

// Get retrieves an allocation by ID.
func (s *Service) Get(ctx context.Context, allocID id.AllocationID) (*Allocation, error) {
	var found *Allocation
	op := &middleware.Operation{Name: "allocation.get", AllocationID: allocID.String()}

	err := s.run(ctx, op, func(ctx context.Context) error {
		a, err := s.store.GetAllocation(ctx, allocID)
		if err != nil {
			return err
		}
		found = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List returns a page of allocations matching opts, sorted by allocation
// date descending. Skip is floored at 0; Limit defaults to DefaultLimit and
// is clamped to [1, MaxLimit].
func (s *Service) List(ctx context.Context, opts ListOpts) ([]*Allocation, error) {
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}

	var list []*Allocation
	op := &middleware.Operation{Name: "allocation.list", VehicleID: opts.VehicleID.String()}

	err := s.run(ctx, op, func(ctx context.Context) error {
		result, err := s.store.ListAllocations(ctx, opts)
		if err != nil {
			return err
		}
		list = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Stats returns the total allocation count and a per-status breakdown over
// the optionally date-bounded allocation set.
func (s *Service) Stats(ctx context.Context, opts StatsOpts) (*Stats, error) {
	var st *Stats
	op := &middleware.Operation{Name: "allocation.stats"}

	err := s.run(ctx, op, func(ctx context.Context) error {
		breakdown, err := s.store.CountAllocationsByStatus(ctx, opts)
		if err != nil {
			return err
		}

		st = &Stats{StatusBreakdown: breakdown}
		for _, count := range breakdown {
			st.TotalAllocations += count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// CheckAvailability computes the vehicles free on the calendar day
// containing day: all vehicles minus those with a non-cancelled allocation
// that day, plus summary counts.
func (s *Service) CheckAvailability(ctx context.Context, day time.Time) (*Availability, error) {
	var report *Availability
	op := &middleware.Operation{Name: "allocation.availability"}

	err := s.run(ctx, op, func(ctx context.Context) error {
		allocatedIDs, err := s.store.ListAllocatedVehicles(ctx, day)
		if err != nil {
			return fmt.Errorf("allocation: list allocated vehicles: %w", err)
		}

		allocated := make(map[string]struct{}, len(allocatedIDs))
		for _, vid := range allocatedIDs {
			allocated[vid.String()] = struct{}{}
		}

		all, err := s.vehicles.ListVehicles(ctx)
		if err != nil {
			return fmt.Errorf("allocation: list vehicles: %w", err)
		}

		available := make([]*vehicle.Vehicle, 0, len(all))
		for _, v := range all {
			if _, ok := allocated[v.ID.String()]; !ok {
				available = append(available, v)
			}
		}

		report = &Availability{
			Date:              StartOfDay(day).Format(time.DateOnly),
			TotalVehicles:     len(all),
			AllocatedVehicles: len(allocatedIDs),
			AvailableVehicles: len(available),
			Vehicles:          available,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
