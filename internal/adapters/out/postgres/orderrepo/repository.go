package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its line items in checkout order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus writes the new status only where the row still holds
// expected. When no row matches it re-reads the order to tell a missing
// order from a lost race.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), expected.String()).
		Updates(map[string]any{
			"status":       aggregate.Status().String(),
			"updated_at":   aggregate.UpdatedAt().UTC(),
			"delivered_at": utc(aggregate.DeliveredAt()),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.explainMissedUpdate(ctx, id, aggregate.Status())
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *GormOrderRepository) explainMissedUpdate(ctx context.Context, id kernel.UUID, requested order.Status) error {
	var statuses []string
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Pluck("status", &statuses).Error
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return order.NewIllegalTransitionError(order.Status(statuses[0]), requested)
}

// FilterTerminal returns the ids among ids whose order is delivered or cancelled.
func (r *GormOrderRepository) FilterTerminal(ctx context.Context, ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return []kernel.UUID{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	terminal := make([]string, 0, len(order.TerminalStatuses()))
	for _, s := range order.TerminalStatuses() {
		terminal = append(terminal, s.String())
	}

	var found []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id IN ? AND status IN ?", raw, terminal).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	return uuids(found...)
}
