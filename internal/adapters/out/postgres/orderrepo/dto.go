// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Line items live in their own table and are always loaded with the order.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns are fixed at checkout; status, updated_at and delivered_at
// are the only columns written afterwards.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items               []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax                 decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PromotionCode       string          `gorm:"type:varchar(64)"`
	Status              string          `gorm:"type:varchar(32);not null;index"`
	Address             AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Payment             PaymentDTO      `gorm:"embedded;embeddedPrefix:payment_"`
	CreatedAt           time.Time       `gorm:"not null;index"`
	UpdatedAt           time.Time       `gorm:"not null"`
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Position keeps the checkout order of lines.
type ItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(128);not null"`
	PostalCode string `gorm:"type:varchar(32)"`
	Notes      string `gorm:"type:text"`
}

// PaymentDTO is the card snapshot; MethodID is NULL for orders placed
// without a saved card.
type PaymentDTO struct {
	MethodID    *uuid.UUID `gorm:"type:uuid"`
	CardBrand   string     `gorm:"type:varchar(32)"`
	Last4       string     `gorm:"type:varchar(4)"`
	ExpiryMonth int
	ExpiryYear  int
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:    id,
			Position:   i + 1,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Decimal(),
		})
	}

	var payment PaymentDTO
	if p := o.Payment(); p != nil {
		methodID := p.PaymentMethodID.Bytes()
		payment = PaymentDTO{
			MethodID:    &methodID,
			CardBrand:   p.CardBrand,
			Last4:       p.Last4,
			ExpiryMonth: p.ExpiryMonth,
			ExpiryYear:  p.ExpiryYear,
		}
	}

	address := o.Address()
	return OrderDTO{
		ID:            id,
		UserID:        o.UserID().Bytes(),
		RestaurantID:  o.RestaurantID().Bytes(),
		Items:         items,
		Subtotal:      o.Subtotal().Decimal(),
		DeliveryFee:   o.DeliveryFee().Decimal(),
		Tax:           o.Tax().Decimal(),
		Discount:      o.Discount().Decimal(),
		Total:         o.Total().Decimal(),
		PromotionCode: o.PromotionCode(),
		Status:        o.Status().String(),
		Address: AddressDTO{
			Street:     address.Street,
			City:       address.City,
			PostalCode: address.PostalCode,
			Notes:      address.Notes,
		},
		Payment:             payment,
		CreatedAt:           o.CreatedAt().UTC(),
		UpdatedAt:           o.UpdatedAt().UTC(),
		EstimatedDeliveryAt: utc(o.EstimatedDeliveryAt()),
		DeliveredAt:         utc(o.DeliveredAt()),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-checks the stored total.
func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := uuids(dto.ID, dto.UserID, dto.RestaurantID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, moneyErr := kernel.NewMoney(itemDTO.UnitPrice)
		if moneyErr != nil {
			return nil, moneyErr
		}
		item, itemErr := order.NewItem(menuItemID, itemDTO.Name, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	amounts, err := money(dto.Subtotal, dto.DeliveryFee, dto.Tax, dto.Discount, dto.Total)
	if err != nil {
		return nil, err
	}

	var payment *order.PaymentSnapshot
	if dto.Payment.MethodID != nil {
		methodID, idErr := kernel.UUIDFromBytes(dto.Payment.MethodID[:])
		if idErr != nil {
			return nil, idErr
		}
		payment = &order.PaymentSnapshot{
			PaymentMethodID: methodID,
			CardBrand:       dto.Payment.CardBrand,
			Last4:           dto.Payment.Last4,
			ExpiryMonth:     dto.Payment.ExpiryMonth,
			ExpiryYear:      dto.Payment.ExpiryYear,
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           ids[0],
		UserID:       ids[1],
		RestaurantID: ids[2],
		Items:        items,
		Subtotal:     amounts[0],
		Charges: order.Charges{
			DeliveryFee:   amounts[1],
			Tax:           amounts[2],
			Discount:      amounts[3],
			PromotionCode: dto.PromotionCode,
		},
		Total:  amounts[4],
		Status: order.Status(dto.Status),
		Address: order.Address{
			Street:     dto.Address.Street,
			City:       dto.Address.City,
			PostalCode: dto.Address.PostalCode,
			Notes:      dto.Address.Notes,
		},
		Payment:             payment,
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
		EstimatedDeliveryAt: utc(dto.EstimatedDeliveryAt),
		DeliveredAt:         utc(dto.DeliveredAt),
	})
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func money(raw ...decimal.Decimal) ([]kernel.Money, error) {
	out := make([]kernel.Money, 0, len(raw))
	for _, r := range raw {
		m, err := kernel.NewMoney(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
