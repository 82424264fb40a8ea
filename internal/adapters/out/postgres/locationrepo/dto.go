// Package locationrepo stores the latest delivery location per order in
// Postgres. It works outside any unit of work: each call is one statement.
package locationrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type DeliveryLocationDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Longitude float64   `gorm:"type:double precision;not null"`
	Latitude  float64   `gorm:"type:double precision;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (DeliveryLocationDTO) TableName() string {
	return "delivery_locations"
}

func fromDomain(loc *tracking.DeliveryLocation) DeliveryLocationDTO {
	return DeliveryLocationDTO{
		OrderID:   loc.OrderID().Bytes(),
		Longitude: loc.Longitude(),
		Latitude:  loc.Latitude(),
		UpdatedAt: loc.UpdatedAt().UTC(),
	}
}

func toDomain(dto DeliveryLocationDTO) (*tracking.DeliveryLocation, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewLocation(dto.Longitude, dto.Latitude)
	if err != nil {
		return nil, err
	}

	return tracking.NewDeliveryLocation(orderID, point, dto.UpdatedAt)
}
