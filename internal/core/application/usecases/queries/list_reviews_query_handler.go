package queries

import (
	"context"
	"database/sql"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListReviewsQueryHandler struct {
	db *gorm.DB
}

func NewListReviewsQueryHandler(db *gorm.DB) ListReviewsQueryHandler {
	return ListReviewsQueryHandler{db: db}
}

// Handle is public: reviews are readable without a principal. Authors whose
// account is gone are listed with an empty name.
func (h ListReviewsQueryHandler) Handle(ctx context.Context, query ListReviewsQuery) ([]ReviewView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			rv.id,
			rv.user_id,
			u.name,
			rv.menu_item_id,
			rv.rating,
			rv.comment,
			rv.created_at
		FROM reviews rv
		LEFT JOIN users u ON u.id = rv.user_id
		WHERE rv.restaurant_id = ?
		ORDER BY rv.created_at DESC, rv.id DESC
		LIMIT ? OFFSET ?
	`, query.restaurantID.Bytes(), query.limit, query.offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]ReviewView, 0)
	for rows.Next() {
		var (
			id, userID uuid.UUID
			userName   sql.NullString
			menuItemID uuid.NullUUID
			rating     int
			comment    sql.NullString
			createdAt  time.Time
		)
		if err = rows.Scan(&id, &userID, &userName, &menuItemID, &rating, &comment, &createdAt); err != nil {
			return nil, err
		}

		ids, idErr := toKernelUUIDs(id, userID)
		if idErr != nil {
			return nil, idErr
		}

		view := ReviewView{
			ID:        ids[0],
			UserID:    ids[1],
			UserName:  userName.String,
			Rating:    rating,
			Comment:   comment.String,
			CreatedAt: createdAt.UTC(),
		}
		if menuItemID.Valid {
			itemID, itemErr := kernel.UUIDFromBytes(menuItemID.UUID[:])
			if itemErr != nil {
				return nil, itemErr
			}
			view.MenuItemID = &itemID
		}

		reviews = append(reviews, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}
