package order

import (
	"errors"
	"fmt"
	"regexp"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var last4Pattern = regexp.MustCompile(`^[0-9]{4}$`)

// Address is the delivery address copied onto the order at checkout.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Notes      string
}

func (a Address) Validate() error {
	var err error
	if a.Street == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address.street"))
	}
	if a.City == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("address.city"))
	}
	return err
}

// PaymentSnapshot is the card metadata copied from the customer's saved
// payment method. Raw card data never reaches the order.
type PaymentSnapshot struct {
	PaymentMethodID kernel.UUID
	CardBrand       string
	Last4           string
	ExpiryMonth     int
	ExpiryYear      int
}

func (p PaymentSnapshot) Validate() error {
	var err error
	if vErr := p.PaymentMethodID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("payment.paymentMethodId", vErr))
	}
	if !last4Pattern.MatchString(p.Last4) {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("payment.last4",
			fmt.Errorf("%q is not four digits", p.Last4)))
	}
	if p.ExpiryMonth < 1 || p.ExpiryMonth > 12 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("payment.expiryMonth", p.ExpiryMonth, 1, 12))
	}
	return err
}
