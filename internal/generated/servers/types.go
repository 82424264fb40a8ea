package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for OrderStatus.
const (
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
)

// Defines values for Role.
const (
	RoleCustomer        Role = "customer"
	RoleDeliveryAgent   Role = "delivery_agent"
	RoleRestaurantOwner Role = "restaurant_owner"
)

// AddPaymentMethodRequest defines model for AddPaymentMethodRequest.
type AddPaymentMethodRequest struct {
	Token string `json:"token"`
}

// Address defines model for Address.
type Address struct {
	City       string  `json:"city"`
	Notes      *string `json:"notes,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Street     string  `json:"street"`
}

// CartItem defines model for CartItem.
type CartItem struct {
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

// CreateOrderRequest defines model for CreateOrderRequest.
type CreateOrderRequest struct {
	DeliveryAddress Address             `json:"deliveryAddress"`
	Items           []CartItem          `json:"items"`
	PaymentMethodId *openapi_types.UUID `json:"paymentMethodId,omitempty"`
	PromotionCode   *string             `json:"promotionCode,omitempty"`
	RestaurantId    openapi_types.UUID  `json:"restaurantId"`
}

// CreatePromotionRequest defines model for CreatePromotionRequest.
type CreatePromotionRequest struct {
	Code            string             `json:"code"`
	DiscountPercent float64            `json:"discountPercent"`
	RestaurantId    openapi_types.UUID `json:"restaurantId"`
	ValidUntil      time.Time          `json:"validUntil"`
}

// CreateReviewRequest defines model for CreateReviewRequest.
type CreateReviewRequest struct {
	Comment      *string             `json:"comment,omitempty"`
	MenuItemId   *openapi_types.UUID `json:"menuItemId,omitempty"`
	Rating       int                 `json:"rating"`
	RestaurantId openapi_types.UUID  `json:"restaurantId"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// Error defines model for Error.
type Error struct {
	AllowedNext *[]OrderStatus `json:"allowedNext,omitempty"`
	Code        int            `json:"code"`
	Message     string         `json:"message"`
}

// Location defines model for Location.
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Order defines model for Order.
type Order struct {
	AllowedNext         []OrderStatus      `json:"allowedNext"`
	CreatedAt           time.Time          `json:"createdAt"`
	DeliveredAt         *time.Time         `json:"deliveredAt,omitempty"`
	DeliveryAddress     Address            `json:"deliveryAddress"`
	DeliveryFee         string             `json:"deliveryFee"`
	Discount            string             `json:"discount"`
	EstimatedDeliveryAt *time.Time         `json:"estimatedDeliveryAt,omitempty"`
	Id                  openapi_types.UUID `json:"id"`
	Items               []OrderItem        `json:"items"`
	Location            *Location          `json:"location,omitempty"`
	Payment             *PaymentSummary    `json:"payment,omitempty"`
	PromotionCode       *string            `json:"promotionCode,omitempty"`
	RestaurantId        openapi_types.UUID `json:"restaurantId"`
	Status              OrderStatus        `json:"status"`
	Subtotal            string             `json:"subtotal"`
	Tax                 string             `json:"tax"`
	Total               string             `json:"total"`
	UpdatedAt           time.Time          `json:"updatedAt"`
	UserId              openapi_types.UUID `json:"userId"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	LineTotal  string             `json:"lineTotal"`
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Name       string             `json:"name"`
	Quantity   int                `json:"quantity"`
	UnitPrice  string             `json:"unitPrice"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// PaymentMethod defines model for PaymentMethod.
type PaymentMethod struct {
	CardBrand   string             `json:"cardBrand"`
	CreatedAt   time.Time          `json:"createdAt"`
	ExpiryMonth int                `json:"expiryMonth"`
	ExpiryYear  int                `json:"expiryYear"`
	Id          openapi_types.UUID `json:"id"`
	IsDefault   bool               `json:"isDefault"`
	Last4       string             `json:"last4"`
}

// PaymentSummary defines model for PaymentSummary.
type PaymentSummary struct {
	CardBrand       string             `json:"cardBrand"`
	ExpiryMonth     int                `json:"expiryMonth"`
	ExpiryYear      int                `json:"expiryYear"`
	Last4           string             `json:"last4"`
	PaymentMethodId openapi_types.UUID `json:"paymentMethodId"`
}

// Promotion defines model for Promotion.
type Promotion struct {
	Code            string             `json:"code"`
	DiscountPercent string             `json:"discountPercent"`
	Id              openapi_types.UUID `json:"id"`
	RestaurantId    openapi_types.UUID `json:"restaurantId"`
	ValidUntil      time.Time          `json:"validUntil"`
}

// RegisterRequest defines model for RegisterRequest.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Review defines model for Review.
type Review struct {
	Comment    string              `json:"comment"`
	CreatedAt  time.Time           `json:"createdAt"`
	Id         openapi_types.UUID  `json:"id"`
	MenuItemId *openapi_types.UUID `json:"menuItemId,omitempty"`
	Rating     int                 `json:"rating"`
	UserId     openapi_types.UUID  `json:"userId"`
	UserName   string              `json:"userName"`
}

// Role defines model for Role.
type Role string

// Token defines model for Token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
	User        User      `json:"user"`
}

// UpdateOrderStatusRequest defines model for UpdateOrderStatusRequest.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// User defines model for User.
type User struct {
	Email string             `json:"email"`
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Role  Role               `json:"role"`
}

// Limit defines model for Limit.
type Limit = int

// Offset defines model for Offset.
type Offset = int

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// RestaurantIdQuery defines model for RestaurantIdQuery.
type RestaurantIdQuery = openapi_types.UUID

// StatusFilter defines model for StatusFilter.
type StatusFilter = OrderStatus

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *StatusFilter `form:"status,omitempty" json:"status,omitempty"`
	Limit  *Limit        `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *Offset       `form:"offset,omitempty" json:"offset,omitempty"`
}

// ListRestaurantOrdersParams defines parameters for ListRestaurantOrders.
type ListRestaurantOrdersParams struct {
	Status *StatusFilter `form:"status,omitempty" json:"status,omitempty"`
	Limit  *Limit        `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *Offset       `form:"offset,omitempty" json:"offset,omitempty"`
}

// ListPromotionsParams defines parameters for ListPromotions.
type ListPromotionsParams struct {
	RestaurantId RestaurantIdQuery `form:"restaurantId" json:"restaurantId"`
}

// ListReviewsParams defines parameters for ListReviews.
type ListReviewsParams struct {
	RestaurantId RestaurantIdQuery `form:"restaurantId" json:"restaurantId"`
	Limit        *Limit            `form:"limit,omitempty" json:"limit,omitempty"`
	Offset       *Offset           `form:"offset,omitempty" json:"offset,omitempty"`
}

// RegisterUserJSONRequestBody defines body for RegisterUser for application/json ContentType.
type RegisterUserJSONRequestBody = RegisterRequest

// LoginJSONRequestBody defines body for Login for application/json ContentType.
type LoginJSONRequestBody = LoginRequest

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = CreateOrderRequest

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = UpdateOrderStatusRequest

// AddPaymentMethodJSONRequestBody defines body for AddPaymentMethod for application/json ContentType.
type AddPaymentMethodJSONRequestBody = AddPaymentMethodRequest

// CreatePromotionJSONRequestBody defines body for CreatePromotion for application/json ContentType.
type CreatePromotionJSONRequestBody = CreatePromotionRequest

// CreateReviewJSONRequestBody defines body for CreateReview for application/json ContentType.
type CreateReviewJSONRequestBody = CreateReviewRequest
