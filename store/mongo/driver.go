package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	fleet "github.com/nishorgo/vehicle-allocation"
	"github.com/nishorgo/vehicle-allocation/driver"
	"github.com/nishorgo/vehicle-allocation/id"
)

// CreateDriver persists a new driver.
func (s *Store) CreateDriver(ctx context.Context, d *driver.Driver) error {
	m := toDriverModel(d)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("fleet/mongo: create driver: %w", err)
	}
	return nil
}

// GetDriver retrieves a driver by ID.
func (s *Store) GetDriver(ctx context.Context, driverID id.DriverID) (*driver.Driver, error) {
	col := s.mdb.Collection(colDrivers)
	var m driverModel
	err := col.FindOne(ctx, bson.M{"_id": driverID.String()}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fleet.ErrDriverNotFound
		}
		return nil, fmt.Errorf("fleet/mongo: get driver: %w", err)
	}
	return fromDriverModel(&m)
}
