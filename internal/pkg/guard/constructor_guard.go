// Package guard marks values that were built through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into aggregates, value objects and commands.
// Its zero value fails validation, so a struct literal that skipped the
// constructor is detected on first use.
//
// Example:
//
//	type CreateOrdersCommand struct {
//	    drafts []OrderDraft
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c CreateOrdersCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
