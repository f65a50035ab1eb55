package driver

import (
	"time"

	"github.com/nishorgo/vehicle-allocation/id"
)

// Driver operates a pool vehicle. A driver can be assigned to at most one
// vehicle at a time; the constraint is checked at vehicle creation.
type Driver struct {
	ID            id.DriverID `json:"id"`
	Name          string      `json:"name"`
	LicenseNumber string      `json:"license_number"`
	ContactNumber string      `json:"contact_number"`
	CreatedAt     time.Time   `json:"created_at"`
}
