// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero-value instances can be told apart from ones
// built by their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was built by its constructor.
//
// Example usage:
//
//	var ErrTicketNotConstructed = errors.New("Ticket must be created via NewTicket")
//
//	type Ticket struct {
//	    itemName string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewTicket(itemName string) (Ticket, error) {
//	    if itemName == "" {
//	        return Ticket{}, errors.New("item name is required")
//	    }
//	    return Ticket{itemName: itemName, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Ticket) Validate() error {
//	    return t.guard.Validate(ErrTicketNotConstructed)
//	}
//
// The guard is a plain value and is safe to copy and to read concurrently.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
// Call it only from the constructor of the enclosing type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError when the guard is a zero value, and nil otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
