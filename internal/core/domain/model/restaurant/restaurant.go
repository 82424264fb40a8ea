// Package restaurant holds the read side of the restaurant catalog that
// checkout and authorization depend on: ownership, delivery fee, menu
// prices and the aggregated review rating.
package restaurant

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// MenuItem is a dish with its current price. Orders copy the price at checkout.
type MenuItem struct {
	ID        kernel.UUID
	Name      string
	Price     kernel.Money
	Available bool
}

func (m MenuItem) Validate() error {
	var err error
	if vErr := m.ID.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if m.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("menuItem.name"))
	}
	return err
}

type Restaurant struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	name        string
	deliveryFee kernel.Money
	eta         time.Duration
	rating      float64
	menu        map[kernel.UUID]MenuItem

	isConstructed bool
}

// NewRestaurant validates the restaurant and indexes its menu by item id.
// eta is the advertised delivery time, zero when unknown.
func NewRestaurant(
	id, ownerID kernel.UUID,
	name string,
	deliveryFee kernel.Money,
	eta time.Duration,
	rating float64,
	menu []MenuItem,
) (*Restaurant, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if vErr := ownerID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("owner", vErr))
	}
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if eta < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("eta", fmt.Errorf("%s is negative", eta)))
	}

	indexed := make(map[kernel.UUID]MenuItem, len(menu))
	for _, item := range menu {
		if vErr := item.Validate(); vErr != nil {
			err = errors.Join(err, vErr)
			continue
		}
		indexed[item.ID] = item
	}
	if err != nil {
		return nil, err
	}

	return &Restaurant{
		id:            id,
		ownerID:       ownerID,
		name:          name,
		deliveryFee:   deliveryFee,
		eta:           eta,
		rating:        rating,
		menu:          indexed,
		isConstructed: true,
	}, nil
}

func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

func (r *Restaurant) Name() string {
	return r.name
}

func (r *Restaurant) DeliveryFee() kernel.Money {
	return r.deliveryFee
}

func (r *Restaurant) EstimatedDelivery() time.Duration {
	return r.eta
}

func (r *Restaurant) Rating() float64 {
	return r.rating
}

func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// Menu returns the menu items in no particular order.
func (r *Restaurant) Menu() []MenuItem {
	out := make([]MenuItem, 0, len(r.menu))
	for _, item := range r.menu {
		out = append(out, item)
	}
	return out
}

// OrderableItem returns the menu item if it belongs to this restaurant and
// is currently available.
func (r *Restaurant) OrderableItem(id kernel.UUID) (MenuItem, error) {
	item, ok := r.menu[id]
	if !ok {
		return MenuItem{}, errs.NewValueIsInvalidErrorWithCause("menuItemId",
			fmt.Errorf("%s is not on the menu of restaurant %s", id, r.id))
	}
	if !item.Available {
		return MenuItem{}, errs.NewValueIsInvalidErrorWithCause("menuItemId",
			fmt.Errorf("%s (%s) is not available", id, item.Name))
	}
	return item, nil
}

// AverageRating rounds the mean of ratings to one decimal, 0 when empty.
func AverageRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
