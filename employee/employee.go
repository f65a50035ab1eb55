package employee

import (
	"time"

	"github.com/nishorgo/vehicle-allocation/id"
)

// Employee is a member of staff who can be allocated a vehicle.
type Employee struct {
	ID         id.EmployeeID `json:"id"`
	Name       string        `json:"name"`
	Department string        `json:"department"`
	Email      string        `json:"email"`
	CreatedAt  time.Time     `json:"created_at"`
}
