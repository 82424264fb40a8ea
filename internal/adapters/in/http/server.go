package http

import (
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/generated/servers"
)

// CommandHandlers are the write use cases reachable over HTTP.
type CommandHandlers struct {
	RegisterUser        commands.RegisterUserCommandHandler
	CreateOrder         commands.CreateOrderCommandHandler
	ChangeOrderStatus   commands.ChangeOrderStatusCommandHandler
	AddPaymentMethod    commands.AddPaymentMethodCommandHandler
	DeletePaymentMethod commands.DeletePaymentMethodCommandHandler
	CreatePromotion     commands.CreatePromotionCommandHandler
	DeletePromotion     commands.DeletePromotionCommandHandler
	CreateReview        commands.CreateReviewCommandHandler
}

// QueryHandlers are the read use cases reachable over HTTP.
type QueryHandlers struct {
	AuthenticateUser     queries.AuthenticateUserQueryHandler
	GetOrder             queries.GetOrderQueryHandler
	ListUserOrders       queries.ListUserOrdersQueryHandler
	ListRestaurantOrders queries.ListRestaurantOrdersQueryHandler
	ListPaymentMethods   queries.ListPaymentMethodsQueryHandler
	ListPromotions       queries.ListPromotionsQueryHandler
	ListReviews          queries.ListReviewsQueryHandler
	GetDeliveryLocation  queries.GetDeliveryLocationQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	tokens   *TokenIssuer
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds CommandHandlers, qs QueryHandlers, tokens *TokenIssuer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		commands: cmds,
		queries:  qs,
		tokens:   tokens,
		logger:   logger.With("component", "HTTPServer"),
	}
}
