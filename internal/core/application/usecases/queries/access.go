package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ownsRestaurant reports whether principal owns restaurantID. An unknown
// restaurant is owned by nobody.
func ownsRestaurant(ctx context.Context, db *gorm.DB, principal user.Principal, restaurantID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM restaurants WHERE id = ? AND owner_id = ?`,
			restaurantID, principal.UserID.Bytes()).
		Scan(&count).Error
	return count > 0, err
}

// isOrderParticipant reports whether principal placed orderID or owns its
// restaurant.
func isOrderParticipant(ctx context.Context, db *gorm.DB, principal user.Principal, orderID kernel.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders o
		LEFT JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = ? AND (o.user_id = ? OR r.owner_id = ?)
	`, orderID.Bytes(), principal.UserID.Bytes(), principal.UserID.Bytes()).
		Scan(&count).Error
	return count > 0, err
}
