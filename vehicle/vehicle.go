package vehicle

import (
	"time"

	"github.com/nishorgo/vehicle-allocation/id"
)

// Vehicle is a pool vehicle available for allocation. Each vehicle has
// exactly one assigned driver.
type Vehicle struct {
	ID                 id.VehicleID `json:"id"`
	Brand              string       `json:"brand"`
	Model              string       `json:"model"`
	RegistrationNumber string       `json:"registration_number"`
	DriverID           id.DriverID  `json:"driver_id"`
	CreatedAt          time.Time    `json:"created_at"`
}
