// Package paymentrepo persists saved payment methods. Only the gateway token
// and display metadata are stored.
package paymentrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentMethodDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Token       string    `gorm:"type:varchar(255);not null"`
	CardBrand   string    `gorm:"type:varchar(32);not null"`
	Last4       string    `gorm:"type:varchar(4);not null"`
	ExpiryMonth int       `gorm:"not null"`
	ExpiryYear  int       `gorm:"not null"`
	IsDefault   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (PaymentMethodDTO) TableName() string {
	return "payment_methods"
}

func fromDomain(p *payment.PaymentMethod) PaymentMethodDTO {
	card := p.Card()
	return PaymentMethodDTO{
		ID:          p.ID().Bytes(),
		UserID:      p.UserID().Bytes(),
		Token:       p.Token(),
		CardBrand:   card.Brand,
		Last4:       card.Last4,
		ExpiryMonth: card.ExpiryMonth,
		ExpiryYear:  card.ExpiryYear,
		IsDefault:   p.IsDefault(),
		CreatedAt:   p.CreatedAt().UTC(),
	}
}

func toDomain(dto PaymentMethodDTO) (*payment.PaymentMethod, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	card := payment.CardDetails{
		Brand:       dto.CardBrand,
		Last4:       dto.Last4,
		ExpiryMonth: dto.ExpiryMonth,
		ExpiryYear:  dto.ExpiryYear,
	}
	return payment.NewPaymentMethod(id, userID, dto.Token, card, dto.IsDefault, dto.CreatedAt)
}
