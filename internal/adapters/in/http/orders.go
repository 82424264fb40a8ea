package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/orders - the caller's own orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	filter, err := orderFilter(params.Status, params.Limit, params.Offset)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListUserOrdersQuery(principalFrom(ctx), filter)
	if err != nil {
		return s.writeError(ctx, err)
	}

	views, err := s.queries.ListUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toServerOrders(views))
}

// ListRestaurantOrders handles GET /api/my/restaurant/orders.
func (s *Server) ListRestaurantOrders(ctx echo.Context, params servers.ListRestaurantOrdersParams) error {
	filter, err := orderFilter(params.Status, params.Limit, params.Offset)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListRestaurantOrdersQuery(principalFrom(ctx), filter)
	if err != nil {
		return s.writeError(ctx, err)
	}

	views, err := s.queries.ListRestaurantOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toServerOrders(views))
}

// CreateOrder handles POST /api/orders - checks out a cart and returns the
// placed order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := toKernelUUID(body.RestaurantId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	paymentMethodID, err := optionalKernelUUID(body.PaymentMethodId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	lines := make([]services.CartLine, 0, len(body.Items))
	for _, item := range body.Items {
		menuItemID, idErr := toKernelUUID(item.MenuItemId)
		if idErr != nil {
			return s.writeError(ctx, idErr)
		}
		lines = append(lines, services.CartLine{MenuItemID: menuItemID, Quantity: item.Quantity})
	}

	address := order.Address{
		Street:     body.DeliveryAddress.Street,
		City:       body.DeliveryAddress.City,
		PostalCode: optionalString(body.DeliveryAddress.PostalCode),
		Notes:      optionalString(body.DeliveryAddress.Notes),
	}

	principal := principalFrom(ctx)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, principal, restaurantID, lines, address, paymentMethodID, optionalString(body.PromotionCode),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernelUUID(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondWithOrder(ctx, http.StatusOK, id)
}

// UpdateOrderStatus handles PATCH /api/orders/{orderId}/status. A rejected
// transition answers 409 with the statuses the order may move to.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernelUUID(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	status, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, principalFrom(ctx), status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, id)
}

// GetDeliveryLocation handles GET /api/delivery-agent/{orderId}.
func (s *Server) GetDeliveryLocation(ctx echo.Context, orderId servers.OrderId) error {
	id, err := toKernelUUID(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryLocationQuery(id, principalFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	loc, err := s.queries.GetDeliveryLocation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toServerLocation(loc))
}

func (s *Server) respondWithOrder(ctx echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id, principalFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.queries.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(code, toServerOrder(view))
}

func orderFilter(status *servers.StatusFilter, limit, offset *int) (queries.OrderFilter, error) {
	var filter queries.OrderFilter
	if status != nil {
		parsed, err := order.ParseStatus(string(*status))
		if err != nil {
			return queries.OrderFilter{}, err
		}
		filter.Status = &parsed
	}
	if limit != nil {
		filter.Limit = *limit
	}
	if offset != nil {
		filter.Offset = *offset
	}
	return filter, nil
}
