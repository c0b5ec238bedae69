package rides

import (
	"github.com/pkg/errors"
)

var (
	ErrMissingProductID   = errors.New("product id is required")
	ErrMissingPickup      = errors.New("pickup latitude and longitude are required")
	ErrIncompleteDropoff  = errors.New("dropoff latitude and longitude must be set together")
	ErrControllerReleased = errors.New("controller has been destroyed")
)

// RideParameters describes the ride a button would request.
type RideParameters struct {
	ProductID        string
	PickupLatitude   *float64
	PickupLongitude  *float64
	PickupNickname   string
	PickupAddress    string
	DropoffLatitude  *float64
	DropoffLongitude *float64
	DropoffNickname  string
	DropoffAddress   string
}

// Coordinate returns a pointer to v for use in RideParameters.
func Coordinate(v float64) *float64 {
	return &v
}

// Validate checks that the parameters can drive an estimate.
func (p RideParameters) Validate() error {
	if p.ProductID == "" {
		return ErrMissingProductID
	}
	if p.PickupLatitude == nil || p.PickupLongitude == nil {
		return ErrMissingPickup
	}
	if (p.DropoffLatitude == nil) != (p.DropoffLongitude == nil) {
		return ErrIncompleteDropoff
	}
	return nil
}

// HasDropoff reports whether a dropoff point is set.
func (p RideParameters) HasDropoff() bool {
	return p.DropoffLatitude != nil && p.DropoffLongitude != nil
}
