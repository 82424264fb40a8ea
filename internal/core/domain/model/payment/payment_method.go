// Package payment holds saved payment method metadata. Card numbers never
// reach this service: the gateway resolves a token to brand, last four
// digits and expiry, and only those are stored.
package payment

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

var ErrPaymentMethodIsNotConstructed = errors.New("PaymentMethod must be created via NewPaymentMethod constructor")

// CardDetails is what the payment gateway reports for a payment method token.
type CardDetails struct {
	Brand       string
	Last4       string
	ExpiryMonth int
	ExpiryYear  int
}

type PaymentMethod struct {
	id        kernel.UUID
	userID    kernel.UUID
	token     string
	card      CardDetails
	isDefault bool
	createdAt time.Time

	isConstructed bool
}

// NewPaymentMethod builds a saved card for userID. The gateway token is kept
// to charge the card later; card holds display metadata only.
func NewPaymentMethod(
	id, userID kernel.UUID,
	token string,
	card CardDetails,
	isDefault bool,
	createdAt time.Time,
) (*PaymentMethod, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if vErr := userID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("user", vErr))
	}
	if token == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("paymentMethodToken"))
	}
	if card.Brand == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("cardBrand"))
	}
	if err != nil {
		return nil, err
	}

	pm := &PaymentMethod{
		id:            id,
		userID:        userID,
		token:         token,
		card:          card,
		isDefault:     isDefault,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
	if err = pm.Snapshot().Validate(); err != nil {
		return nil, err
	}
	return pm, nil
}

func (p *PaymentMethod) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentMethodIsNotConstructed
	}
	return nil
}

func (p *PaymentMethod) ID() kernel.UUID {
	return p.id
}

func (p *PaymentMethod) UserID() kernel.UUID {
	return p.userID
}

func (p *PaymentMethod) Token() string {
	return p.token
}

func (p *PaymentMethod) Card() CardDetails {
	return p.card
}

func (p *PaymentMethod) IsDefault() bool {
	return p.isDefault
}

func (p *PaymentMethod) CreatedAt() time.Time {
	return p.createdAt
}

func (p *PaymentMethod) IsOwnedBy(userID kernel.UUID) bool {
	return p.userID.IsEqual(userID)
}

// IsExpired reports whether the card expired before the month of now.
func (p *PaymentMethod) IsExpired(now time.Time) bool {
	y, m, _ := now.Date()
	return p.card.ExpiryYear < y || (p.card.ExpiryYear == y && p.card.ExpiryMonth < int(m))
}

// Snapshot is the metadata copied onto an order paid with this method.
func (p *PaymentMethod) Snapshot() order.PaymentSnapshot {
	return order.PaymentSnapshot{
		PaymentMethodID: p.id,
		CardBrand:       p.card.Brand,
		Last4:           p.card.Last4,
		ExpiryMonth:     p.card.ExpiryMonth,
		ExpiryYear:      p.card.ExpiryYear,
	}
}

// EnsureUsableFor checks the method can pay an order placed by userID at now.
func (p *PaymentMethod) EnsureUsableFor(userID kernel.UUID, now time.Time) error {
	if !p.IsOwnedBy(userID) {
		return errs.NewAccessDeniedError("payment method belongs to another user")
	}
	if p.IsExpired(now) {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethodId",
			fmt.Errorf("card expired %02d/%d", p.card.ExpiryMonth, p.card.ExpiryYear))
	}
	return nil
}
