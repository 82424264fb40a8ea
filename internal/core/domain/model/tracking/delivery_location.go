// Package tracking models the live position of an order's delivery agent.
package tracking

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

var ErrDeliveryLocationIsNotConstructed = errors.New(
	"DeliveryLocation must be created via NewDeliveryLocation constructor")

// DeliveryLocation is the last known agent position for one order. There is
// at most one per order: a newer push replaces it, nothing is appended.
type DeliveryLocation struct {
	orderID   kernel.UUID
	point     kernel.Location
	updatedAt time.Time

	isConstructed bool
}

// NewDeliveryLocation stamps point for orderID at updatedAt (stored in UTC).
func NewDeliveryLocation(orderID kernel.UUID, point kernel.Location, updatedAt time.Time) (*DeliveryLocation, error) {
	if err := errors.Join(orderID.Validate(), point.Validate()); err != nil {
		return nil, err
	}
	return &DeliveryLocation{
		orderID:       orderID,
		point:         point,
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}, nil
}

func (l *DeliveryLocation) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrDeliveryLocationIsNotConstructed
	}
	return nil
}

func (l *DeliveryLocation) OrderID() kernel.UUID {
	return l.orderID
}

func (l *DeliveryLocation) Point() kernel.Location {
	return l.point
}

func (l *DeliveryLocation) Longitude() float64 {
	return l.point.Longitude()
}

func (l *DeliveryLocation) Latitude() float64 {
	return l.point.Latitude()
}

func (l *DeliveryLocation) UpdatedAt() time.Time {
	return l.updatedAt
}

// SameObservableState reports whether two records expose the same order and
// coordinates, ignoring the update timestamp.
func (l *DeliveryLocation) SameObservableState(other *DeliveryLocation) bool {
	if other == nil {
		return false
	}
	return l.orderID.IsEqual(other.orderID) && l.point == other.point
}
