// Package guard provides ConstructorGuard, a marker that lets value objects,
// aggregates and commands detect whether they were built through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a struct and set only by the struct's constructor.
// A zero-value struct therefore fails Validate.
//
// Example usage:
//
//	var ErrBagNotConstructed = errors.New("Bag must be created via NewBag")
//
//	type Bag struct {
//	    label string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewBag(label string) (*Bag, error) {
//	    return &Bag{label: label, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (b *Bag) Validate() error {
//	    return b.guard.Validate(ErrBagNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
