// Package restaurantrepo persists the restaurant catalog: restaurants and
// their menu items. The service reads it for checkout and authorization and
// writes only the aggregated rating.
package restaurantrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(255);not null"`
	DeliveryFee       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedDelivery int             `gorm:"not null;default:0"` // minutes
	Rating            float64         `gorm:"not null;default:0"`
	MenuItems         []MenuItemDTO   `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(r *restaurant.Restaurant) RestaurantDTO {
	id := r.ID().Bytes()

	items := make([]MenuItemDTO, 0, len(r.Menu()))
	for _, item := range r.Menu() {
		items = append(items, MenuItemDTO{
			ID:           item.ID.Bytes(),
			RestaurantID: id,
			Name:         item.Name,
			Price:        item.Price.Decimal(),
			Available:    item.Available,
		})
	}

	return RestaurantDTO{
		ID:                id,
		OwnerID:           r.OwnerID().Bytes(),
		Name:              r.Name(),
		DeliveryFee:       r.DeliveryFee().Decimal(),
		EstimatedDelivery: int(r.EstimatedDelivery() / time.Minute),
		Rating:            r.Rating(),
		MenuItems:         items,
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	menu := make([]restaurant.MenuItem, 0, len(dto.MenuItems))
	for _, itemDTO := range dto.MenuItems {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, moneyErr := kernel.NewMoney(itemDTO.Price)
		if moneyErr != nil {
			return nil, moneyErr
		}
		menu = append(menu, restaurant.MenuItem{
			ID:        itemID,
			Name:      itemDTO.Name,
			Price:     price,
			Available: itemDTO.Available,
		})
	}

	eta := time.Duration(dto.EstimatedDelivery) * time.Minute
	return restaurant.NewRestaurant(id, ownerID, dto.Name, fee, eta, dto.Rating, menu)
}
