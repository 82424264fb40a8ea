package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's checkout of a cart at one
// restaurant. Prices are not part of the command; they are read from the
// menu catalog when the command is handled.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, principal, restaurantID,
//	    []services.CartLine{{MenuItemID: burgerID, Quantity: 2}},
//	    order.Address{Street: "House 7, Road 12", City: "Dhaka"},
//	    nil, "EID20")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, pricer)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	principal       user.Principal
	restaurantID    kernel.UUID
	lines           []services.CartLine
	address         order.Address
	paymentMethodID *kernel.UUID
	promotionCode   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of a checkout request.
// paymentMethodID may be nil and promotionCode empty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	principal user.Principal,
	restaurantID kernel.UUID,
	lines []services.CartLine,
	address order.Address,
	paymentMethodID *kernel.UUID,
	promotionCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		principal:     principal,
		promotionCode: promotion.NormalizeCode(promotionCode),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setLines(lines),
		cmd.setAddress(address),
		cmd.setPaymentMethodID(paymentMethodID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Principal() user.Principal {
	return c.principal
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Lines returns a copy of the requested cart lines.
func (c CreateOrderCommand) Lines() []services.CartLine {
	out := make([]services.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

func (c CreateOrderCommand) PaymentMethodID() *kernel.UUID {
	return c.paymentMethodID
}

// PromotionCode returns the normalized code, empty when none was given.
func (c CreateOrderCommand) PromotionCode() string {
	return c.promotionCode
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.CartLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("items.menuItemId", err)
		}
		if line.Quantity <= 0 || line.Quantity > order.MaxQuantity {
			return errs.NewValueIsOutOfRangeError("items.quantity", line.Quantity, 1, order.MaxQuantity)
		}
	}

	c.lines = append([]services.CartLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethodID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethodId", err)
	}

	c.paymentMethodID = id
	return nil
}
