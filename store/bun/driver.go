package bunstore

import (
	"context"
	"fmt"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateDriver persists a new driver.
func (s *Store) CreateDriver(ctx context.Context, d *driver.Driver) error {
	m := toDriverModel(d)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("fleet/bun: create driver: %w", err)
	}
	return nil
}

// GetDriver retrieves a driver by ID.
func (s *Store) GetDriver(ctx context.Context, driverID id.DriverID) (*driver.Driver, error) {
	m := new(driverModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", driverID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fleet.ErrDriverNotFound
		}
		return nil, fmt.Errorf("fleet/bun: get driver: %w", err)
	}
	return fromDriverModel(m)
}
