// Package promotion implements restaurant discount codes.
package promotion

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrPromotionIsNotConstructed = errors.New("Promotion must be created via NewPromotion constructor")
	ErrPromotionNotApplicable    = errors.New("promotion is not applicable")

	maxPercent = decimal.NewFromInt(100)
)

// Promotion is a percentage discount on the subtotal of orders placed at
// one restaurant, redeemable by code until ValidUntil while active.
type Promotion struct {
	id              kernel.UUID
	restaurantID    kernel.UUID
	code            string
	discountPercent decimal.Decimal
	validUntil      time.Time
	active          bool

	isConstructed bool
}

// NewPromotion creates an active promotion. Codes are case-insensitive and
// stored upper-case; validUntil must be after now.
func NewPromotion(
	id, restaurantID kernel.UUID,
	code string,
	discountPercent decimal.Decimal,
	validUntil, now time.Time,
) (*Promotion, error) {
	p, err := RestorePromotion(id, restaurantID, code, discountPercent, validUntil, true)
	if err != nil {
		return nil, err
	}
	if !validUntil.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("validUntil",
			fmt.Errorf("%s is not in the future", validUntil.Format(time.RFC3339)))
	}
	return p, nil
}

// RestorePromotion rebuilds a stored promotion without the future-date check.
func RestorePromotion(
	id, restaurantID kernel.UUID,
	code string,
	discountPercent decimal.Decimal,
	validUntil time.Time,
	active bool,
) (*Promotion, error) {
	p := &Promotion{
		validUntil:    validUntil.UTC(),
		active:        active,
		isConstructed: true,
	}
	if err := errors.Join(
		id.Validate(),
		p.setRestaurantID(restaurantID),
		p.setCode(code),
		p.setDiscountPercent(discountPercent),
	); err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

// NormalizeCode is the canonical form codes are stored and looked up by.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (p *Promotion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPromotionIsNotConstructed
	}
	return nil
}

func (p *Promotion) ID() kernel.UUID {
	return p.id
}

func (p *Promotion) RestaurantID() kernel.UUID {
	return p.restaurantID
}

func (p *Promotion) Code() string {
	return p.code
}

func (p *Promotion) DiscountPercent() decimal.Decimal {
	return p.discountPercent
}

func (p *Promotion) ValidUntil() time.Time {
	return p.validUntil
}

func (p *Promotion) IsActive() bool {
	return p.active
}

// IsExpired reports whether validUntil has passed at now.
func (p *Promotion) IsExpired(now time.Time) bool {
	return !now.Before(p.validUntil)
}

// ApplyTo returns the discount on subtotal for an order at restaurantID.
// The discount never exceeds the subtotal.
func (p *Promotion) ApplyTo(restaurantID kernel.UUID, subtotal kernel.Money, now time.Time) (kernel.Money, error) {
	switch {
	case !p.restaurantID.IsEqual(restaurantID):
		return kernel.Zero, errs.NewValueIsInvalidErrorWithCause("promotionCode",
			fmt.Errorf("%w: %s belongs to another restaurant", ErrPromotionNotApplicable, p.code))
	case !p.active:
		return kernel.Zero, errs.NewValueIsInvalidErrorWithCause("promotionCode",
			fmt.Errorf("%w: %s is inactive", ErrPromotionNotApplicable, p.code))
	case p.IsExpired(now):
		return kernel.Zero, errs.NewValueIsInvalidErrorWithCause("promotionCode",
			fmt.Errorf("%w: %s expired", ErrPromotionNotApplicable, p.code))
	}

	discount := subtotal.Percent(p.discountPercent)
	if discount.GreaterThan(subtotal) {
		return subtotal, nil
	}
	return discount, nil
}

// Deactivate turns the promotion off. It reports whether anything changed.
func (p *Promotion) Deactivate() bool {
	if !p.active {
		return false
	}
	p.active = false
	return true
}

func (p *Promotion) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant", err)
	}
	p.restaurantID = id
	return nil
}

func (p *Promotion) setCode(code string) error {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return errs.NewValueIsRequiredError("code")
	}
	p.code = normalized
	return nil
}

func (p *Promotion) setDiscountPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(maxPercent) {
		return errs.NewValueIsOutOfRangeError("discountPercent", percent.String(), 0, 100)
	}
	p.discountPercent = percent
	return nil
}
