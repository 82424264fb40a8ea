package queries

import (
	"context"
	"database/sql"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrderItemView is one line of an order as it was priced at checkout.
type OrderItemView struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	UnitPrice  kernel.Money
	LineTotal  kernel.Money
}

// LocationView is the last known position of the delivery agent.
type LocationView struct {
	Longitude float64
	Latitude  float64
	UpdatedAt time.Time
}

func NewLocationView(loc *tracking.DeliveryLocation) *LocationView {
	return &LocationView{
		Longitude: loc.Longitude(),
		Latitude:  loc.Latitude(),
		UpdatedAt: loc.UpdatedAt(),
	}
}

// OrderView is the read model of an order. Location is only filled in by
// GetOrder, and only while the order is out for delivery.
type OrderView struct {
	ID                  kernel.UUID
	UserID              kernel.UUID
	RestaurantID        kernel.UUID
	Status              order.Status
	AllowedNext         []order.Status
	Items               []OrderItemView
	Subtotal            kernel.Money
	DeliveryFee         kernel.Money
	Tax                 kernel.Money
	Discount            kernel.Money
	Total               kernel.Money
	PromotionCode       string
	Address             order.Address
	Payment             *order.PaymentSnapshot
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	Location            *LocationView
}

const orderColumns = `
	o.id,
	o.user_id,
	o.restaurant_id,
	o.status,
	o.subtotal,
	o.delivery_fee,
	o.tax,
	o.discount,
	o.total,
	o.promotion_code,
	o.address_street,
	o.address_city,
	o.address_postal_code,
	o.address_notes,
	o.payment_method_id,
	o.payment_card_brand,
	o.payment_last4,
	o.payment_expiry_month,
	o.payment_expiry_year,
	o.created_at,
	o.updated_at,
	o.estimated_delivery_at,
	o.delivered_at`

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)
	for rows.Next() {
		var (
			id, userID, restaurantID            uuid.UUID
			status                              string
			subtotal, fee, tax, discount, total decimal.Decimal
			promotionCode                       sql.NullString
			street, city, postalCode, notes     sql.NullString
			methodID                            uuid.NullUUID
			cardBrand, last4                    sql.NullString
			expiryMonth, expiryYear             sql.NullInt64
			createdAt, updatedAt                time.Time
			estimatedDeliveryAt, deliveredAt    sql.NullTime
		)

		if err := rows.Scan(
			&id, &userID, &restaurantID, &status,
			&subtotal, &fee, &tax, &discount, &total, &promotionCode,
			&street, &city, &postalCode, &notes,
			&methodID, &cardBrand, &last4, &expiryMonth, &expiryYear,
			&createdAt, &updatedAt, &estimatedDeliveryAt, &deliveredAt,
		); err != nil {
			return nil, err
		}

		ids, err := toKernelUUIDs(id, userID, restaurantID)
		if err != nil {
			return nil, err
		}

		parsedStatus, err := order.ParseStatus(status)
		if err != nil {
			return nil, err
		}

		amounts, err := toMoney(subtotal, fee, tax, discount, total)
		if err != nil {
			return nil, err
		}

		view := OrderView{
			ID:            ids[0],
			UserID:        ids[1],
			RestaurantID:  ids[2],
			Status:        parsedStatus,
			AllowedNext:   parsedStatus.AllowedNext(),
			Items:         make([]OrderItemView, 0),
			Subtotal:      amounts[0],
			DeliveryFee:   amounts[1],
			Tax:           amounts[2],
			Discount:      amounts[3],
			Total:         amounts[4],
			PromotionCode: promotionCode.String,
			Address: order.Address{
				Street:     street.String,
				City:       city.String,
				PostalCode: postalCode.String,
				Notes:      notes.String,
			},
			CreatedAt:           createdAt.UTC(),
			UpdatedAt:           updatedAt.UTC(),
			EstimatedDeliveryAt: nullTime(estimatedDeliveryAt),
			DeliveredAt:         nullTime(deliveredAt),
		}

		if methodID.Valid {
			paymentMethodID, idErr := kernel.UUIDFromBytes(methodID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.Payment = &order.PaymentSnapshot{
				PaymentMethodID: paymentMethodID,
				CardBrand:       cardBrand.String,
				Last4:           last4.String,
				ExpiryMonth:     int(expiryMonth.Int64),
				ExpiryYear:      int(expiryYear.Int64),
			}
		}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// attachItems loads the line items of every view in one query.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]int, len(views))
	ids := make([]uuid.UUID, 0, len(views))
	for i, v := range views {
		index[v.ID.Bytes()] = i
		ids = append(ids, v.ID.Bytes())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, menuItemID uuid.UUID
			name                string
			quantity            int
			unitPrice           decimal.Decimal
		)
		if err = rows.Scan(&orderID, &menuItemID, &name, &quantity, &unitPrice); err != nil {
			return err
		}

		itemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return idErr
		}
		price, moneyErr := kernel.NewMoney(unitPrice)
		if moneyErr != nil {
			return moneyErr
		}

		i := index[orderID]
		views[i].Items = append(views[i].Items, OrderItemView{
			MenuItemID: itemID,
			Name:       name,
			Quantity:   quantity,
			UnitPrice:  price,
			LineTotal:  price.Mul(quantity),
		})
	}

	return rows.Err()
}

func toKernelUUIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
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

func toMoney(raw ...decimal.Decimal) ([]kernel.Money, error) {
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

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}

func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	default:
		return limit
	}
}
