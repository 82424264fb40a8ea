package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	goredis "github.com/go-redis/redis/v8"
)

const (
	locationKeyPrefix = "delivery_location:"
	locationIndexKey  = "delivery_locations"

	fieldLongitude = "longitude"
	fieldLatitude  = "latitude"
	fieldUpdatedAt = "updated_at"
)

// DeliveryLocationStore keeps one hash per order,
// delivery_location:<orderId> = {longitude, latitude, updated_at}, plus a set
// of the order ids that have one.
type DeliveryLocationStore struct {
	client goredis.UniversalClient
}

var _ ports.DeliveryLocationRepository = (*DeliveryLocationStore)(nil)

func NewDeliveryLocationStore(client goredis.UniversalClient) *DeliveryLocationStore {
	return &DeliveryLocationStore{client: client}
}

func locationKey(orderID kernel.UUID) string {
	return locationKeyPrefix + orderID.String()
}

func (s *DeliveryLocationStore) Upsert(ctx context.Context, loc *tracking.DeliveryLocation) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, locationKey(loc.OrderID()), map[string]any{
			fieldLongitude: strconv.FormatFloat(loc.Longitude(), 'f', -1, 64),
			fieldLatitude:  strconv.FormatFloat(loc.Latitude(), 'f', -1, 64),
			fieldUpdatedAt: loc.UpdatedAt().Format(time.RFC3339Nano),
		})
		pipe.SAdd(ctx, locationIndexKey, loc.OrderID().String())
		return nil
	})
	return err
}

func (s *DeliveryLocationStore) GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryLocation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	fields, err := s.client.HGetAll(ctx, locationKey(orderID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errs.NewObjectNotFoundError("deliveryLocation", orderID.String())
	}

	return decodeLocation(orderID, fields)
}

func (s *DeliveryLocationStore) ListOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	members, err := s.client.SMembers(ctx, locationIndexKey).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(members))
	for _, m := range members {
		id, parseErr := kernel.UUIDFromString(m)
		if parseErr != nil {
			return nil, parseErr
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *DeliveryLocationStore) Delete(ctx context.Context, orderIDs []kernel.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(orderIDs))
	members := make([]any, 0, len(orderIDs))
	for _, id := range orderIDs {
		keys = append(keys, locationKey(id))
		members = append(members, id.String())
	}

	var deleted *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		deleted = pipe.Del(ctx, keys...)
		pipe.SRem(ctx, locationIndexKey, members...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted.Val(), nil
}

func decodeLocation(orderID kernel.UUID, fields map[string]string) (*tracking.DeliveryLocation, error) {
	lon, err := strconv.ParseFloat(fields[fieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("decode %s of %s: %w", fieldLongitude, orderID, err)
	}
	lat, err := strconv.ParseFloat(fields[fieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("decode %s of %s: %w", fieldLatitude, orderID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("decode %s of %s: %w", fieldUpdatedAt, orderID, err)
	}

	point, err := kernel.NewLocation(lon, lat)
	if err != nil {
		return nil, err
	}
	return tracking.NewDeliveryLocation(orderID, point, updatedAt)
}
