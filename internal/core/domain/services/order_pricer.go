package services

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the sales tax percent applied to the subtotal.
var DefaultTaxRate = decimal.NewFromInt(8)

// CartLine is one requested menu item and how many of it.
type CartLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// Quote is the priced cart: snapshot line items plus the charges that
// order.NewOrder fixes into the total.
type Quote struct {
	Items    []order.Item
	Subtotal kernel.Money
	Charges  order.Charges
}

// Total is subtotal + delivery fee + tax - discount.
func (q Quote) Total() kernel.Money {
	return q.Subtotal.Add(q.Charges.DeliveryFee).Add(q.Charges.Tax).Sub(q.Charges.Discount)
}

// OrderPricer prices a cart against a restaurant's current menu.
//
// Business rules:
//   - every line must name an available item of that restaurant
//   - tax is taxRate percent of the subtotal
//   - a promotion discounts a percentage of the subtotal and never more
//     than the subtotal
//
// Example usage:
//
//	pricer, _ := services.NewOrderPricer(decimal.NewFromInt(8))
//	quote, err := pricer.Price(r, []services.CartLine{{MenuItemID: burgerID, Quantity: 2}}, nil, time.Now())
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(id, userID, r.ID(), quote.Items, quote.Charges, address, nil, now, r.EstimatedDelivery())
type OrderPricer struct {
	taxRate decimal.Decimal
}

// NewOrderPricer creates a pricer. taxRate is a percent in [0, 100].
func NewOrderPricer(taxRate decimal.Decimal) (OrderPricer, error) {
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return OrderPricer{}, errs.NewValueIsOutOfRangeError("taxRate", taxRate.String(), 0, 100)
	}
	return OrderPricer{taxRate: taxRate}, nil
}

func (p OrderPricer) TaxRate() decimal.Decimal {
	return p.taxRate
}

// Price builds the quote. promo may be nil. Line errors are joined so the
// caller sees every bad line at once.
func (p OrderPricer) Price(
	r *restaurant.Restaurant,
	lines []CartLine,
	promo *promotion.Promotion,
	now time.Time,
) (Quote, error) {
	if err := r.Validate(); err != nil {
		return Quote{}, err
	}
	if len(lines) == 0 {
		return Quote{}, errs.NewValueIsRequiredError("items")
	}

	var lineErr error
	items := make([]order.Item, 0, len(lines))
	subtotal := kernel.Zero
	for i, line := range lines {
		menuItem, err := r.OrderableItem(line.MenuItemID)
		if err != nil {
			lineErr = errors.Join(lineErr, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		item, err := order.NewItem(menuItem.ID, menuItem.Name, line.Quantity, menuItem.Price)
		if err != nil {
			lineErr = errors.Join(lineErr, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	if lineErr != nil {
		return Quote{}, lineErr
	}

	charges := order.Charges{
		DeliveryFee: r.DeliveryFee(),
		Tax:         subtotal.Percent(p.taxRate),
		Discount:    kernel.Zero,
	}
	if promo != nil {
		discount, err := promo.ApplyTo(r.ID(), subtotal, now)
		if err != nil {
			return Quote{}, err
		}
		charges.Discount = discount
		charges.PromotionCode = promo.Code()
	}

	return Quote{Items: items, Subtotal: subtotal, Charges: charges}, nil
}
