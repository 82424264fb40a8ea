package http

import (
	"net/http"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ListPaymentMethods handles GET /api/my/payment-method.
func (s *Server) ListPaymentMethods(ctx echo.Context) error {
	views, err := s.queries.ListPaymentMethods.Handle(ctx.Request().Context(),
		queries.NewListPaymentMethodsQuery(principalFrom(ctx)))
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.PaymentMethod, len(views))
	for i, v := range views {
		response[i] = servers.PaymentMethod{
			Id:          v.ID.Bytes(),
			CardBrand:   v.CardBrand,
			Last4:       v.Last4,
			ExpiryMonth: v.ExpiryMonth,
			ExpiryYear:  v.ExpiryYear,
			IsDefault:   v.IsDefault,
			CreatedAt:   v.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddPaymentMethod handles POST /api/my/payment-method. The token is
// resolved by the payment gateway; only card metadata is stored.
func (s *Server) AddPaymentMethod(ctx echo.Context) error {
	var body servers.AddPaymentMethodJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewAddPaymentMethodCommand(id, principalFrom(ctx), body.Token)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.AddPaymentMethod.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// DeletePaymentMethod handles DELETE /api/my/payment-method/{paymentMethodId}.
func (s *Server) DeletePaymentMethod(ctx echo.Context, paymentMethodId openapi_types.UUID) error {
	id, err := toKernelUUID(paymentMethodId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDeletePaymentMethodCommand(id, principalFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.DeletePaymentMethod.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListPromotions handles GET /api/promotion?restaurantId=.
func (s *Server) ListPromotions(ctx echo.Context, params servers.ListPromotionsParams) error {
	restaurantID, err := toKernelUUID(params.RestaurantId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListPromotionsQuery(restaurantID, time.Now())
	if err != nil {
		return s.writeError(ctx, err)
	}

	views, err := s.queries.ListPromotions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Promotion, len(views))
	for i, v := range views {
		response[i] = servers.Promotion{
			Id:              v.ID.Bytes(),
			RestaurantId:    v.RestaurantID.Bytes(),
			Code:            v.Code,
			DiscountPercent: v.DiscountPercent,
			ValidUntil:      v.ValidUntil,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreatePromotion handles POST /api/promotion.
func (s *Server) CreatePromotion(ctx echo.Context) error {
	var body servers.CreatePromotionJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := toKernelUUID(body.RestaurantId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePromotionCommand(
		id, principalFrom(ctx), restaurantID, body.Code, decimal.NewFromFloat(body.DiscountPercent), body.ValidUntil,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.CreatePromotion.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// DeletePromotion handles DELETE /api/promotion/{promotionId}.
func (s *Server) DeletePromotion(ctx echo.Context, promotionId openapi_types.UUID) error {
	id, err := toKernelUUID(promotionId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDeletePromotionCommand(id, principalFrom(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.DeletePromotion.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListReviews handles GET /api/review?restaurantId=&limit=&offset=.
func (s *Server) ListReviews(ctx echo.Context, params servers.ListReviewsParams) error {
	restaurantID, err := toKernelUUID(params.RestaurantId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var limit, offset int
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListReviewsQuery(restaurantID, limit, offset)
	if err != nil {
		return s.writeError(ctx, err)
	}

	views, err := s.queries.ListReviews.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Review, len(views))
	for i, v := range views {
		response[i] = servers.Review{
			Id:        v.ID.Bytes(),
			UserId:    v.UserID.Bytes(),
			UserName:  v.UserName,
			Rating:    v.Rating,
			Comment:   v.Comment,
			CreatedAt: v.CreatedAt,
		}
		if v.MenuItemID != nil {
			menuItemID := v.MenuItemID.Bytes()
			response[i].MenuItemId = &menuItemID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateReview handles POST /api/review.
func (s *Server) CreateReview(ctx echo.Context) error {
	var body servers.CreateReviewJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := toKernelUUID(body.RestaurantId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	menuItemID, err := optionalKernelUUID(body.MenuItemId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateReviewCommand(
		id, principalFrom(ctx), restaurantID, menuItemID, body.Rating, optionalString(body.Comment),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.CreateReview.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}
