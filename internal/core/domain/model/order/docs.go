// Package order implements the Order aggregate root and its status state machine.
//
// The package includes:
//   - Order: a customer's purchase from one restaurant with snapshot prices and a fixed total
//   - Item, Address, PaymentSnapshot: values copied onto the order at checkout
//   - Status: the lifecycle enum and the transition table (CanTransition is the pure guard)
//   - CreatedEvent, StatusChangedEvent: domain events published after commit
//
// Key business rules:
//   - An order needs a user, a restaurant and at least one item
//   - total == subtotal + delivery fee + tax - discount, fixed at creation
//   - Status moves pending -> confirmed -> preparing -> out_for_delivery -> delivered,
//     or to cancelled from any of the first three; delivered and cancelled are terminal
//   - Orders are never deleted, only brought to a terminal status
package order
