// Package servers binds the operations of api/openapi.yml to echo: request
// and response models, the ServerInterface the HTTP adapter implements and
// the wrapper that decodes path and query parameters.
package servers

import (
	"fmt"
	"net/http"

	"fooddelivery/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create an account
	// (POST /api/auth/register)
	RegisterUser(ctx echo.Context) error
	// Exchange credentials for an access token
	// (POST /api/auth/login)
	Login(ctx echo.Context) error
	// Orders placed by the caller, most recent first
	// (GET /api/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Check out a cart
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// One order; the delivery location is embedded while it is out for delivery
	// (GET /api/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Move an order to its next status
	// (PATCH /api/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId OrderId) error
	// Incoming orders of the caller's restaurants, most recent first
	// (GET /api/my/restaurant/orders)
	ListRestaurantOrders(ctx echo.Context, params ListRestaurantOrdersParams) error
	// Saved cards of the caller
	// (GET /api/my/payment-method)
	ListPaymentMethods(ctx echo.Context) error
	// Save a card tokenized by the payment gateway
	// (POST /api/my/payment-method)
	AddPaymentMethod(ctx echo.Context) error
	// Remove a saved card
	// (DELETE /api/my/payment-method/{paymentMethodId})
	DeletePaymentMethod(ctx echo.Context, paymentMethodId openapi_types.UUID) error
	// Active promotions of a restaurant
	// (GET /api/promotion)
	ListPromotions(ctx echo.Context, params ListPromotionsParams) error
	// Create a promotion code for an owned restaurant
	// (POST /api/promotion)
	CreatePromotion(ctx echo.Context) error
	// Delete a promotion of an owned restaurant
	// (DELETE /api/promotion/{promotionId})
	DeletePromotion(ctx echo.Context, promotionId openapi_types.UUID) error
	// Reviews of a restaurant, newest first
	// (GET /api/review)
	ListReviews(ctx echo.Context, params ListReviewsParams) error
	// Review a restaurant or one of its menu items
	// (POST /api/review)
	CreateReview(ctx echo.Context) error
	// Last known position of the order's delivery agent
	// (GET /api/delivery-agent/{orderId})
	GetDeliveryLocation(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// RegisterUser converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

// Login converts echo context to params.
func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	var params ListOrdersParams
	if err := bindOrderFilter(ctx, &params.Status, &params.Limit, &params.Offset); err != nil {
		return err
	}

	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetOrder(ctx, orderId)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.UpdateOrderStatus(ctx, orderId)
}

// ListRestaurantOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListRestaurantOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	var params ListRestaurantOrdersParams
	if err := bindOrderFilter(ctx, &params.Status, &params.Limit, &params.Offset); err != nil {
		return err
	}

	return w.Handler.ListRestaurantOrders(ctx, params)
}

// ListPaymentMethods converts echo context to params.
func (w *ServerInterfaceWrapper) ListPaymentMethods(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.ListPaymentMethods(ctx)
}

// AddPaymentMethod converts echo context to params.
func (w *ServerInterfaceWrapper) AddPaymentMethod(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.AddPaymentMethod(ctx)
}

// DeletePaymentMethod converts echo context to params.
func (w *ServerInterfaceWrapper) DeletePaymentMethod(ctx echo.Context) error {
	paymentMethodId, err := bindPathUUID(ctx, "paymentMethodId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.DeletePaymentMethod(ctx, paymentMethodId)
}

// ListPromotions converts echo context to params.
func (w *ServerInterfaceWrapper) ListPromotions(ctx echo.Context) error {
	var params ListPromotionsParams

	// ------------- Required query parameter "restaurantId" -------------
	err := runtime.BindQueryParameter("form", true, true, "restaurantId", ctx.QueryParams(), &params.RestaurantId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter restaurantId: %s", err))
	}

	return w.Handler.ListPromotions(ctx, params)
}

// CreatePromotion converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePromotion(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreatePromotion(ctx)
}

// DeletePromotion converts echo context to params.
func (w *ServerInterfaceWrapper) DeletePromotion(ctx echo.Context) error {
	promotionId, err := bindPathUUID(ctx, "promotionId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.DeletePromotion(ctx, promotionId)
}

// ListReviews converts echo context to params.
func (w *ServerInterfaceWrapper) ListReviews(ctx echo.Context) error {
	var params ListReviewsParams

	// ------------- Required query parameter "restaurantId" -------------
	err := runtime.BindQueryParameter("form", true, true, "restaurantId", ctx.QueryParams(), &params.RestaurantId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter restaurantId: %s", err))
	}

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	// ------------- Optional query parameter "offset" -------------
	err = runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter offset: %s", err))
	}

	return w.Handler.ListReviews(ctx, params)
}

// CreateReview converts echo context to params.
func (w *ServerInterfaceWrapper) CreateReview(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateReview(ctx)
}

// GetDeliveryLocation converts echo context to params.
func (w *ServerInterfaceWrapper) GetDeliveryLocation(ctx echo.Context) error {
	orderId, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.GetDeliveryLocation(ctx, orderId)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindOrderFilter(ctx echo.Context, status **StatusFilter, limit, offset **int) error {
	// ------------- Optional query parameter "status" -------------
	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	// ------------- Optional query parameter "limit" -------------
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	// ------------- Optional query parameter "offset" -------------
	err = runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter offset: %s", err))
	}

	return nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and
// echo.Group, so either can be the target of RegisterHandlers.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to
// the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/auth/register", wrapper.RegisterUser)
	router.POST(baseURL+"/api/auth/login", wrapper.Login)
	router.GET(baseURL+"/api/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/orders/:orderId", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/my/restaurant/orders", wrapper.ListRestaurantOrders)
	router.GET(baseURL+"/api/my/payment-method", wrapper.ListPaymentMethods)
	router.POST(baseURL+"/api/my/payment-method", wrapper.AddPaymentMethod)
	router.DELETE(baseURL+"/api/my/payment-method/:paymentMethodId", wrapper.DeletePaymentMethod)
	router.GET(baseURL+"/api/promotion", wrapper.ListPromotions)
	router.POST(baseURL+"/api/promotion", wrapper.CreatePromotion)
	router.DELETE(baseURL+"/api/promotion/:promotionId", wrapper.DeletePromotion)
	router.GET(baseURL+"/api/review", wrapper.ListReviews)
	router.POST(baseURL+"/api/review", wrapper.CreateReview)
	router.GET(baseURL+"/api/delivery-agent/:orderId", wrapper.GetDeliveryLocation)
}

// GetSwagger returns the OpenAPI document of the API, parsed and with its
// references resolved.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
}
