// Package kernel holds the value objects shared by every aggregate of the
// food-delivery domain:
//   - UUID: identifier for orders, users, restaurants and the rest
//   - Location: a geographic (longitude, latitude) point
//   - Money: a non-negative decimal amount rounded to cents
//   - DomainEvent: the contract for facts published after a commit
//
// Value objects are immutable and reject their zero value in Validate.
package kernel
