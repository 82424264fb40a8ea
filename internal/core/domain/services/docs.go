// Package services provides domain services for work that spans more than
// one aggregate.
//
// The package includes:
//   - OrderPricer: turns a cart at a restaurant into priced order lines and
//     the checkout charges (delivery fee, tax, promotion discount)
package services
