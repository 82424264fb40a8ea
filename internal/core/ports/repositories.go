package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/promotion"
	"fooddelivery/internal/core/domain/model/review"
	"fooddelivery/internal/core/domain/model/user"
)

type PromotionRepository interface {
	// Add fails with a validation error when the code is already taken.
	Add(ctx context.Context, aggregate *promotion.Promotion) error
	Get(ctx context.Context, id kernel.UUID) (*promotion.Promotion, error)
	GetByCode(ctx context.Context, code string) (*promotion.Promotion, error)
	Update(ctx context.Context, aggregate *promotion.Promotion) error
	Delete(ctx context.Context, id kernel.UUID) error

	// ListExpiredActive returns active promotions whose validUntil is not
	// after now.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*promotion.Promotion, error)
}

type PaymentMethodRepository interface {
	Add(ctx context.Context, aggregate *payment.PaymentMethod) error
	Get(ctx context.Context, id kernel.UUID) (*payment.PaymentMethod, error)
	CountForUser(ctx context.Context, userID kernel.UUID) (int64, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

type ReviewRepository interface {
	Add(ctx context.Context, aggregate *review.Review) error

	// RatingStats returns the sum and count of ratings of a restaurant.
	RatingStats(ctx context.Context, restaurantID kernel.UUID) (sum int, count int, err error)
}

type UserRepository interface {
	// Add fails with a validation error when the email is already registered.
	Add(ctx context.Context, aggregate *user.User) error
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
