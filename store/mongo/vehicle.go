package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// CreateVehicle persists a new vehicle. The unique driver_id index turns a
// concurrent duplicate assignment into fleet.ErrDriverAssigned.
func (s *Store) CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	m := toVehicleModel(v)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return fleet.ErrDriverAssigned
		}
		return fmt.Errorf("fleet/mongo: create vehicle: %w", err)
	}
	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *Store) GetVehicle(ctx context.Context, vehicleID id.VehicleID) (*vehicle.Vehicle, error) {
	col := s.mdb.Collection(colVehicles)
	var m vehicleModel
	err := col.FindOne(ctx, bson.M{"_id": vehicleID.String()}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fleet.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("fleet/mongo: get vehicle: %w", err)
	}
	return fromVehicleModel(&m)
}

// ListVehicles returns all vehicles.
func (s *Store) ListVehicles(ctx context.Context) ([]*vehicle.Vehicle, error) {
	col := s.mdb.Collection(colVehicles)

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fleet/mongo: list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var models []vehicleModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("fleet/mongo: list vehicles decode: %w", err)
	}

	result := make([]*vehicle.Vehicle, 0, len(models))
	for i := range models {
		v, convErr := fromVehicleModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("fleet/mongo: list vehicles convert: %w", convErr)
		}
		result = append(result, v)
	}
	return result, nil
}

// FindVehicleByDriver returns the vehicle the driver is assigned to.
func (s *Store) FindVehicleByDriver(ctx context.Context, driverID id.DriverID) (*vehicle.Vehicle, error) {
	col := s.mdb.Collection(colVehicles)
	var m vehicleModel
	err := col.FindOne(ctx, bson.M{"driver_id": driverID.String()}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fleet.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("fleet/mongo: find vehicle by driver: %w", err)
	}
	return fromVehicleModel(&m)
}
