package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrListPaymentMethodsQueryIsNotConstructed = errors.New(
	"ListPaymentMethodsQuery must be created via NewListPaymentMethodsQuery constructor",
)

// ListPaymentMethodsQuery lists the caller's saved cards. Gateway tokens are
// never part of the result.
type ListPaymentMethodsQuery struct {
	principal user.Principal

	guard guard.ConstructorGuard
}

func NewListPaymentMethodsQuery(principal user.Principal) ListPaymentMethodsQuery {
	return ListPaymentMethodsQuery{principal: principal, guard: guard.NewConstructorGuard()}
}

func (q ListPaymentMethodsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentMethodsQueryIsNotConstructed)
}

type PaymentMethodView struct {
	ID          kernel.UUID
	CardBrand   string
	Last4       string
	ExpiryMonth int
	ExpiryYear  int
	IsDefault   bool
	CreatedAt   time.Time
}
