package kernel

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is validated.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a geographic point. Coordinates are always handled as the pair
// (longitude, latitude), in that order, in constructors, storage and on the wire.
//
// Example:
//
//	loc, err := kernel.NewLocation(90.41, 23.81) // Dhaka
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // Location(lon=90.41, lat=23.81)
type Location struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewLocation validates both axes and returns the point. Errors for the two
// axes are joined so callers see every problem at once.
func NewLocation(longitude, latitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLongitude(longitude), loc.setLatitude(latitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) String() string {
	return fmt.Sprintf("Location(lon=%g, lat=%g)", l.longitude, l.latitude)
}

func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

func (l *Location) setLongitude(longitude float64) error {
	// NaN fails both comparisons, so test the accepted range positively.
	if !(longitude >= MinLongitude && longitude <= MaxLongitude) {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func (l *Location) setLatitude(latitude float64) error {
	if !(latitude >= MinLatitude && latitude <= MaxLatitude) {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}
