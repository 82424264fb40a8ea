// Package guard holds ConstructorGuard, embedded by value objects, commands
// and queries so a zero value can be told apart from a constructed one.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct came out of its
// constructor. Embed it as a private field and call Validate from the
// owner's Validate method.
//
//	type PushDeliveryLocationCommand struct {
//	    orderID kernel.UUID
//	    point   kernel.Location
//	    guard   guard.ConstructorGuard
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
