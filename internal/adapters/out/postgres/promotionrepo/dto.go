// Package promotionrepo persists restaurant discount codes.
package promotionrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/promotion"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromotionDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code            string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	ValidUntil      time.Time       `gorm:"not null;index"`
	Active          bool            `gorm:"not null;index"`
}

func (PromotionDTO) TableName() string {
	return "promotions"
}

func fromDomain(p *promotion.Promotion) PromotionDTO {
	return PromotionDTO{
		ID:              p.ID().Bytes(),
		RestaurantID:    p.RestaurantID().Bytes(),
		Code:            p.Code(),
		DiscountPercent: p.DiscountPercent(),
		ValidUntil:      p.ValidUntil().UTC(),
		Active:          p.IsActive(),
	}
}

func toDomain(dto PromotionDTO) (*promotion.Promotion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return promotion.RestorePromotion(id, restaurantID, dto.Code, dto.DiscountPercent, dto.ValidUntil, dto.Active)
}
