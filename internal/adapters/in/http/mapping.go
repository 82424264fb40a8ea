package http

import (
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func optionalKernelUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := toKernelUUID(*id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toServerStatuses(statuses []order.Status) []servers.OrderStatus {
	out := make([]servers.OrderStatus, len(statuses))
	for i, s := range statuses {
		out[i] = servers.OrderStatus(s)
	}
	return out
}

func toServerLocation(loc *queries.LocationView) *servers.Location {
	if loc == nil {
		return nil
	}
	return &servers.Location{
		Longitude: loc.Longitude,
		Latitude:  loc.Latitude,
		UpdatedAt: loc.UpdatedAt,
	}
}

func toServerOrder(v queries.OrderView) servers.Order {
	items := make([]servers.OrderItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = servers.OrderItem{
			MenuItemId: item.MenuItemID.Bytes(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
			LineTotal:  item.LineTotal.String(),
		}
	}

	var payment *servers.PaymentSummary
	if v.Payment != nil {
		payment = &servers.PaymentSummary{
			PaymentMethodId: v.Payment.PaymentMethodID.Bytes(),
			CardBrand:       v.Payment.CardBrand,
			Last4:           v.Payment.Last4,
			ExpiryMonth:     v.Payment.ExpiryMonth,
			ExpiryYear:      v.Payment.ExpiryYear,
		}
	}

	return servers.Order{
		Id:            v.ID.Bytes(),
		UserId:        v.UserID.Bytes(),
		RestaurantId:  v.RestaurantID.Bytes(),
		Status:        servers.OrderStatus(v.Status),
		AllowedNext:   toServerStatuses(v.AllowedNext),
		Items:         items,
		Subtotal:      v.Subtotal.String(),
		DeliveryFee:   v.DeliveryFee.String(),
		Tax:           v.Tax.String(),
		Discount:      v.Discount.String(),
		Total:         v.Total.String(),
		PromotionCode: stringOrNil(v.PromotionCode),
		DeliveryAddress: servers.Address{
			Street:     v.Address.Street,
			City:       v.Address.City,
			PostalCode: stringOrNil(v.Address.PostalCode),
			Notes:      stringOrNil(v.Address.Notes),
		},
		Payment:             payment,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
		EstimatedDeliveryAt: v.EstimatedDeliveryAt,
		DeliveredAt:         v.DeliveredAt,
		Location:            toServerLocation(v.Location),
	}
}

func toServerOrders(views []queries.OrderView) []servers.Order {
	out := make([]servers.Order, len(views))
	for i, v := range views {
		out[i] = toServerOrder(v)
	}
	return out
}
