// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	PromotionRepoFactory interface {
		PromotionRepository() ports.PromotionRepository
	}

	PaymentMethodRepoFactory interface {
		PaymentMethodRepository() ports.PaymentMethodRepository
	}

	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW is used by commands that only read or write orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW places an order, redeeming a promotion and a saved card
	// in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   promo, err := uow.PromotionRepository().GetByCode(ctx, code)
	//   // ... price the cart
	//   err = uow.OrderRepository().Add(ctx, order)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		PromotionRepoFactory
		PaymentMethodRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderStatusUoW changes an order's status after checking the caller
	// owns the restaurant.
	OrderStatusUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
	}

	OrderStatusUoWFactory interface {
		Create() OrderStatusUoW
	}

	PaymentMethodUoW interface {
		TxManager
		PaymentMethodRepoFactory
	}

	PaymentMethodUoWFactory interface {
		Create() PaymentMethodUoW
	}

	PromotionUoW interface {
		TxManager
		PromotionRepoFactory
		RestaurantRepoFactory
	}

	PromotionUoWFactory interface {
		Create() PromotionUoW
	}

	ReviewUoW interface {
		TxManager
		ReviewRepoFactory
		RestaurantRepoFactory
	}

	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}
)
