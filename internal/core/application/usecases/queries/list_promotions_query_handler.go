package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListPromotionsQueryHandler struct {
	db *gorm.DB
}

func NewListPromotionsQueryHandler(db *gorm.DB) ListPromotionsQueryHandler {
	return ListPromotionsQueryHandler{db: db}
}

// Handle returns promotions ordered by the soonest expiry.
func (h ListPromotionsQueryHandler) Handle(ctx context.Context, query ListPromotionsQuery) ([]PromotionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			code,
			discount_percent,
			valid_until
		FROM promotions
		WHERE restaurant_id = ? AND active = ? AND valid_until > ?
		ORDER BY valid_until, code
	`, query.restaurantID.Bytes(), true, query.now).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := make([]PromotionView, 0)
	for rows.Next() {
		var (
			id, restaurantID uuid.UUID
			code             string
			percent          decimal.Decimal
			validUntil       time.Time
		)
		if err = rows.Scan(&id, &restaurantID, &code, &percent, &validUntil); err != nil {
			return nil, err
		}

		ids, idErr := toKernelUUIDs(id, restaurantID)
		if idErr != nil {
			return nil, idErr
		}

		promotions = append(promotions, PromotionView{
			ID:              ids[0],
			RestaurantID:    ids[1],
			Code:            code,
			DiscountPercent: percent.StringFixed(2),
			ValidUntil:      validUntil.UTC(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return promotions, nil
}
