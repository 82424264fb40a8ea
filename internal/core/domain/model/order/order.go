package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrTotalMismatch         = errors.New("total must equal subtotal + delivery fee + tax - discount")
)

// Charges are the amounts computed at checkout on top of the line items.
type Charges struct {
	DeliveryFee   kernel.Money
	Tax           kernel.Money
	Discount      kernel.Money
	PromotionCode string
}

// Order is the aggregate root of the order lifecycle. Line item prices and
// all money fields are fixed at creation; after that only the status (and
// the timestamps it drives) changes, and only through ChangeStatus.
type Order struct {
	id           kernel.UUID
	userID       kernel.UUID
	restaurantID kernel.UUID

	items []Item

	subtotal kernel.Money
	charges  Charges
	total    kernel.Money

	status Status

	address Address
	payment *PaymentSnapshot

	createdAt           time.Time
	updatedAt           time.Time
	estimatedDeliveryAt *time.Time
	deliveredAt         *time.Time

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places a new order in Pending status. The subtotal is the sum of
// the item lines and the total is fixed here as
// subtotal + delivery fee + tax - discount. eta may be zero when the
// restaurant publishes no delivery estimate.
//
// An OrderCreated event is recorded on the returned aggregate.
func NewOrder(
	id, userID, restaurantID kernel.UUID,
	items []Item,
	charges Charges,
	address Address,
	payment *PaymentSnapshot,
	now time.Time,
	eta time.Duration,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		charges:       charges,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setAddress(address),
		o.setPayment(payment),
	); err != nil {
		return nil, err
	}

	gross := o.subtotal.Add(charges.DeliveryFee).Add(charges.Tax)
	if charges.Discount.GreaterThan(o.subtotal) {
		return nil, errs.NewValueIsOutOfRangeError("discount", charges.Discount.String(), "0", o.subtotal.String())
	}
	o.total = gross.Sub(charges.Discount)

	if eta > 0 {
		at := o.createdAt.Add(eta)
		o.estimatedDeliveryAt = &at
	}

	o.raise(NewCreatedEvent(o))
	return o, nil
}

// Snapshot carries every persisted field of an order. It is used by
// persistence adapters to rebuild the aggregate via RestoreOrder.
type Snapshot struct {
	ID                  kernel.UUID
	UserID              kernel.UUID
	RestaurantID        kernel.UUID
	Items               []Item
	Subtotal            kernel.Money
	Charges             Charges
	Total               kernel.Money
	Status              Status
	Address             Address
	Payment             *PaymentSnapshot
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
}

// RestoreOrder rebuilds an order from storage and re-checks its invariants,
// including that the stored total still matches its components.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		charges:             s.Charges,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		estimatedDeliveryAt: s.EstimatedDeliveryAt,
		deliveredAt:         s.DeliveredAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setRestaurantID(s.RestaurantID),
		o.setItems(s.Items),
		o.setAddress(s.Address),
		o.setPayment(s.Payment),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if !o.subtotal.Equal(s.Subtotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("stored %s, items sum to %s", s.Subtotal, o.subtotal))
	}
	expected := o.subtotal.Add(s.Charges.DeliveryFee).Add(s.Charges.Tax).Sub(s.Charges.Discount)
	if !expected.Equal(s.Total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total", ErrTotalMismatch)
	}
	o.total = s.Total

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) UserID() kernel.UUID {
	return o.userID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

func (o *Order) DeliveryFee() kernel.Money {
	return o.charges.DeliveryFee
}

func (o *Order) Tax() kernel.Money {
	return o.charges.Tax
}

func (o *Order) Discount() kernel.Money {
	return o.charges.Discount
}

func (o *Order) PromotionCode() string {
	return o.charges.PromotionCode
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Address() Address {
	return o.address
}

func (o *Order) Payment() *PaymentSnapshot {
	return o.payment
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) EstimatedDeliveryAt() *time.Time {
	return o.estimatedDeliveryAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// ChangeStatus moves the order to requested if the transition table allows
// it and records a StatusChanged event. Reaching Delivered stamps
// DeliveredAt. On error the aggregate is unchanged.
func (o *Order) ChangeStatus(requested Status, now time.Time) error {
	previous := o.status
	next, err := previous.Transition(requested)
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now.UTC()
	if next == Delivered {
		at := o.updatedAt
		o.deliveredAt = &at
	}

	o.raise(NewStatusChangedEvent(o, previous))
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant", err)
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	subtotal := kernel.Zero
	validated := make([]Item, 0, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
		subtotal = subtotal.Add(item.LineTotal())
		validated = append(validated, item)
	}

	o.items = validated
	o.subtotal = subtotal
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPayment(payment *PaymentSnapshot) error {
	if payment == nil {
		return nil
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}
