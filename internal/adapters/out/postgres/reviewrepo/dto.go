// Package reviewrepo persists restaurant reviews and aggregates their ratings.
package reviewrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/review"

	"github.com/google/uuid"
)

type ReviewDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	MenuItemID   *uuid.UUID `gorm:"type:uuid"`
	Rating       int        `gorm:"not null"`
	Comment      string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"not null;index"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(r *review.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:           r.ID().Bytes(),
		UserID:       r.UserID().Bytes(),
		RestaurantID: r.RestaurantID().Bytes(),
		Rating:       r.Rating(),
		Comment:      r.Comment(),
		CreatedAt:    r.CreatedAt().UTC(),
	}
	if itemID := r.MenuItemID(); itemID != nil {
		raw := itemID.Bytes()
		dto.MenuItemID = &raw
	}
	return dto
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var menuItemID *kernel.UUID
	if dto.MenuItemID != nil {
		itemID, itemErr := kernel.UUIDFromBytes(dto.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		menuItemID = &itemID
	}

	return review.NewReview(id, userID, restaurantID, menuItemID, dto.Rating, dto.Comment, dto.CreatedAt)
}
