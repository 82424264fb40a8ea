package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListPaymentMethodsQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentMethodsQueryHandler(db *gorm.DB) ListPaymentMethodsQueryHandler {
	return ListPaymentMethodsQueryHandler{db: db}
}

// Handle lists the default card first, then the rest by age.
func (h ListPaymentMethodsQueryHandler) Handle(
	ctx context.Context,
	query ListPaymentMethodsQuery,
) ([]PaymentMethodView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.principal.Require(user.RoleCustomer); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			card_brand,
			last4,
			expiry_month,
			expiry_year,
			is_default,
			created_at
		FROM payment_methods
		WHERE user_id = ?
		ORDER BY is_default DESC, created_at, id
	`, query.principal.UserID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	methods := make([]PaymentMethodView, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			view      PaymentMethodView
			createdAt time.Time
		)
		if err = rows.Scan(&id, &view.CardBrand, &view.Last4, &view.ExpiryMonth, &view.ExpiryYear,
			&view.IsDefault, &createdAt); err != nil {
			return nil, err
		}

		methodID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = methodID
		view.CreatedAt = createdAt.UTC()
		methods = append(methods, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return methods, nil
}
