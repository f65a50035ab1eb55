package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/allocation"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateAllocation persists a new allocation. The partial unique index on
// (vehicle_id, allocation_day) turns a concurrent duplicate into
// fleet.ErrVehicleAllocated.
func (s *Store) CreateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return fleet.ErrVehicleAllocated
		}
		return fmt.Errorf("fleet/mongo: create allocation: %w", err)
	}
	return nil
}

// GetAllocation retrieves an allocation by ID.
func (s *Store) GetAllocation(ctx context.Context, allocID id.AllocationID) (*allocation.Allocation, error) {
	col := s.mdb.Collection(colAllocations)
	var m allocationModel
	err := col.FindOne(ctx, bson.M{"_id": allocID.String()}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fleet.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("fleet/mongo: get allocation: %w", err)
	}
	return fromAllocationModel(&m)
}

// UpdateAllocation persists changes to an existing allocation.
func (s *Store) UpdateAllocation(ctx context.Context, a *allocation.Allocation) error {
	m := toAllocationModel(a)
	m.UpdatedAt = now()
	col := s.mdb.Collection(colAllocations)
	res, err := col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		if isDuplicateKey(err) {
			return fleet.ErrVehicleAllocated
		}
		return fmt.Errorf("fleet/mongo: update allocation: %w", err)
	}
	if res.MatchedCount == 0 {
		return fleet.ErrAllocationNotFound
	}
	return nil
}

// DeleteAllocation removes an allocation by ID.
func (s *Store) DeleteAllocation(ctx context.Context, allocID id.AllocationID) error {
	col := s.mdb.Collection(colAllocations)
	res, err := col.DeleteOne(ctx, bson.M{"_id": allocID.String()})
	if err != nil {
		return fmt.Errorf("fleet/mongo: delete allocation: %w", err)
	}
	if res.DeletedCount == 0 {
		return fleet.ErrAllocationNotFound
	}
	return nil
}

// listFilter builds the bson filter for ListAllocations.
func listFilter(opts allocation.ListOpts) bson.M {
	filter := bson.M{}

	if !opts.EmployeeID.IsNil() {
		filter["employee_id"] = opts.EmployeeID.String()
	}
	if !opts.VehicleID.IsNil() {
		filter["vehicle_id"] = opts.VehicleID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	switch {
	case opts.Start != nil && opts.End != nil:
		filter["allocation_date"] = bson.M{
			"$gte": opts.Start.UTC(),
			"$lte": opts.End.UTC(),
		}
	case opts.Start != nil:
		filter["allocation_date"] = bson.M{"$gte": allocation.StartOfDay(*opts.Start)}
	case opts.End != nil:
		filter["allocation_date"] = bson.M{"$lte": allocation.EndOfDay(*opts.End)}
	}

	return filter
}

// ListAllocations returns allocations matching opts, sorted by allocation
// date descending.
func (s *Store) ListAllocations(ctx context.Context, opts allocation.ListOpts) ([]*allocation.Allocation, error) {
	col := s.mdb.Collection(colAllocations)

	findOpts := options.Find().SetSort(bson.D{{Key: "allocation_date", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(int64(opts.Skip))
	}

	cursor, err := col.Find(ctx, listFilter(opts), findOpts)
	if err != nil {
		return nil, fmt.Errorf("fleet/mongo: list allocations: %w", err)
	}
	defer cursor.Close(ctx)

	var models []allocationModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("fleet/mongo: list allocations decode: %w", err)
	}

	result := make([]*allocation.Allocation, 0, len(models))
	for i := range models {
		a, convErr := fromAllocationModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("fleet/mongo: list allocations convert: %w", convErr)
		}
		result = append(result, a)
	}
	return result, nil
}

// CountAllocationsByStatus returns per-status allocation counts over the
// optionally date-bounded set. The range applies only when both bounds are
// set.
func (s *Store) CountAllocationsByStatus(ctx context.Context, opts allocation.StatsOpts) (map[allocation.Status]int64, error) {
	match := bson.M{}
	if opts.Start != nil && opts.End != nil {
		match["allocation_date"] = bson.M{
			"$gte": allocation.StartOfDay(*opts.Start),
			"$lte": allocation.EndOfDay(*opts.End),
		}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	col := s.mdb.Collection(colAllocations)
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("fleet/mongo: allocation stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("fleet/mongo: allocation stats decode: %w", err)
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
	col := s.mdb.Collection(colAllocations)

	filter := bson.M{
		"vehicle_id":      vehicleID.String(),
		"allocation_date": dayRange(day),
		"status":          bson.M{"$ne": string(allocation.StatusCancelled)},
	}

	var m allocationModel
	err := col.FindOne(ctx, filter).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fleet.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("fleet/mongo: find active allocation: %w", err)
	}
	return fromAllocationModel(&m)
}

// ListAllocatedVehicles returns the distinct vehicle references with a
// non-cancelled allocation on the calendar day containing day.
func (s *Store) ListAllocatedVehicles(ctx context.Context, day time.Time) ([]id.VehicleID, error) {
	col := s.mdb.Collection(colAllocations)

	filter := bson.M{
		"allocation_date": dayRange(day),
		"status":          bson.M{"$ne": string(allocation.StatusCancelled)},
	}

	var raw []string
	if err := col.Distinct(ctx, "vehicle_id", filter).Decode(&raw); err != nil {
		return nil, fmt.Errorf("fleet/mongo: list allocated vehicles: %w", err)
	}

	result := make([]id.VehicleID, 0, len(raw))
	for _, v := range raw {
		parsed, err := id.ParseVehicleID(v)
		if err != nil {
			return nil, fmt.Errorf("fleet/mongo: parse vehicle id %q: %w", v, err)
		}
		result = append(result, parsed)
	}
	return result, nil
}
