package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// MaxQuantity caps one order line so line totals fit the stored money columns.
const MaxQuantity = 99

// Item is one order line. UnitPrice is the menu price at checkout time and
// never follows later menu changes.
type Item struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	name       string
	quantity   int
	unitPrice  kernel.Money

	guard guard.ConstructorGuard
}

func NewItem(menuItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	i.quantity = quantity
	return nil
}
