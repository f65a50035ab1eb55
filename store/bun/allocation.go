package bunstore

import (
	"context"
	"fmt"
	"time"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateAllocation persists a new allocation. The partial unique index on
// (vehicle_id, allocation_day) turns a concurrent duplicate into
// fleet.ErrVehicleAllocated.
func (s *Store) CreateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return fleet.ErrVehicleAllocated
		}
		return fmt.Errorf("fleet/bun: create allocation: %w", err)
	}
	return nil
}

// GetAllocation retrieves an allocation by ID.
func (s *Store) GetAllocation(ctx context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	m := new(allocationModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", allocID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fleet.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("fleet/bun: get allocation: %w", err)
	}
	return fromAllocationModel(m)
}

// UpdateAllocation persists changes to an existing allocation.
func (s *Store) UpdateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	m.UpdatedAt = time.Now().UTC()
	res, err := s.db.NewUpdate().Model(m).WherePK().Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return fleet.ErrVehicleAllocated
		}
		return fmt.Errorf("fleet/bun: update allocation: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return fleet.ErrAllocationNotFound
	}
	return nil
}

// DeleteAllocation removes an allocation by ID.
func (s *Store) DeleteAllocation(ctx context.Context, allocID id.AllocationID) error {
	res, err := s.db.NewDelete().
		TableExpr("allocations").
		Where("id = ?", allocID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("fleet/bun: delete allocation: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return fleet.ErrAllocationNotFound
	}
	return nil
}

// ListAllocations returns allocations matching opts, sorted by allocation
// date descending.
func (s *Store) ListAllocations(ctx context.Context, opts allocation.ListOpts) ([]*allocation.Allocation, error) {
	var models []allocationModel
	q := s.db.NewSelect().Model(&models)

	if !opts.EmployeeID.IsNil() {
		q = q.Where("employee_id = ?", opts.EmployeeID.String())
	}
	if !opts.VehicleID.IsNil() {
		q = q.Where("vehicle_id = ?", opts.VehicleID.String())
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}

	switch {
	case opts.Start != nil && opts.End != nil:
		q = q.Where("allocation_date >= ?", opts.Start.UTC()).
			Where("allocation_date <= ?", opts.End.UTC())
	case opts.Start != nil:
		q = q.Where("allocation_date >= ?", allocation.StartOfDay(*opts.Start))
	case opts.End != nil:
		q = q.Where("allocation_date <= ?", allocation.EndOfDay(*opts.End))
	}

	q = q.Order("allocation_date DESC")

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Skip > 0 {
		q = q.Offset(opts.Skip)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: list allocations: %w", err)
	}

	result := make([]*allocation.Allocation, 0, len(models))
	for i := range models {
		a, convErr := fromAllocationModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("fleet/bun: list allocations convert: %w", convErr)
		}
		result = append(result, a)
	}
	return result, nil
}

// CountAllocationsByStatus returns per-status allocation counts over the
// optionally date-bounded set. The range applies only when both bounds are
// set.
func (s *Store) CountAllocationsByStatus(ctx context.Context, opts allocation.StatsOpts) (map[allocation.Status]int64, error) {
	var rows []struct {
		Status string `bun:"status"`
		Count  int64  `bun:"count"`
	}

	q := s.db.NewSelect().
		TableExpr("allocations").
		ColumnExpr("status").
		ColumnExpr("COUNT(*) AS count")

	if opts.Start != nil && opts.End != nil {
		q = q.Where("allocation_date >= ?", allocation.StartOfDay(*opts.Start)).
			Where("allocation_date <= ?", allocation.EndOfDay(*opts.End))
	}

	err := q.GroupExpr("status").Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: allocation stats: %w", err)
	}

	breakdown := make(map[allocation.Status]int64, len(rows))
	for _, row := range rows {
		breakdown[allocation.Status(row.Status)] = row.Count
	}
	return breakdown, nil
}

// FindActiveAllocation returns the non-cancelled allocation for the vehicle
// on the calendar day containing day.
func (s *Store) FindActiveAllocation(ctx context.Context, vehicleID id.VehicleID, day time.Time) (*allocation.Allocation, error) {
	m := new(allocationModel)
	err := s.db.NewSelect().Model(m).
		Where("vehicle_id = ?", vehicleID.String()).
		Where("allocation_date >= ?", allocation.StartOfDay(day)).
		Where("allocation_date <= ?", allocation.EndOfDay(day)).
		Where("status <> ?", string(allocation.StatusCancelled)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fleet.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("fleet/bun: find active allocation: %w", err)
	}
	return fromAllocationModel(m)
}

// ListAllocatedVehicles returns the distinct vehicle references with a
// non-cancelled allocation on the calendar day containing day.
func (s *Store) ListAllocatedVehicles(ctx context.Context, day time.Time) ([]id.VehicleID, error) {
	var raw []string
	err := s.db.NewSelect().
		TableExpr("allocations").
		ColumnExpr("DISTINCT vehicle_id").
		Where("allocation_date >= ?", allocation.StartOfDay(day)).
		Where("allocation_date <= ?", allocation.EndOfDay(day)).
		Where("status <> ?", string(allocation.StatusCancelled)).
		Scan(ctx, &raw)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: list allocated vehicles: %w", err)
	}

	result := make([]id.VehicleID, 0, len(raw))
	for _, v := range raw {
		parsed, parseErr := id.ParseVehicleID(v)
		if parseErr != nil {
			return nil, fmt.Errorf("fleet/bun: parse vehicle id %q: %w", v, parseErr)
		}
		result = append(result, parsed)
	}
	return result, nil
}
