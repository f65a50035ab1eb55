package bunstore

import (
	"context"
	"fmt"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/id"
	"github.com/nishorgo/vehicle-allocation/vehicle"
)

// CreateVehicle persists a new vehicle. The unique driver_id index turns a
// concurrent duplicate assignment into fleet.ErrDriverAssigned.
func (s *Store) CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	m := toVehicleModel(v)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return fleet.ErrDriverAssigned
		}
		return fmt.Errorf("fleet/bun: create vehicle: %w", err)
	}
	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *Store) GetVehicle(ctx context.Context, vehicleID id.VehicleID) (*vehicle.Vehicle, error) {
	m := new(vehicleModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", vehicleID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fleet.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("fleet/bun: get vehicle: %w", err)
	}
	return fromVehicleModel(m)
}

// ListVehicles returns all vehicles sorted by creation time.
func (s *Store) ListVehicles(ctx context.Context) ([]*vehicle.Vehicle, error) {
	var models []vehicleModel
	err := s.db.NewSelect().Model(&models).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fleet/bun: list vehicles: %w", err)
	}

	result := make([]*vehicle.Vehicle, 0, len(models))
	for i := range models {
		v, convErr := fromVehicleModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("fleet/bun: list vehicles convert: %w", convErr)
		}
		result = append(result, v)
	}
	return result, nil
}

// FindVehicleByDriver returns the vehicle the driver is assigned to.
func (s *Store) FindVehicleByDriver(ctx context.Context, driverID id.DriverID) (*vehicle.Vehicle, error) {
	m := new(vehicleModel)
	err := s.db.NewSelect().Model(m).
		Where("driver_id = ?", driverID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fleet.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("fleet/bun: find vehicle by driver: %w", err)
	}
	return fromVehicleModel(m)
}
