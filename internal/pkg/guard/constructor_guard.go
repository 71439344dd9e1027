// Package guard implements the constructor guard pattern: a small embedded value
// that distinguishes objects built through their designated constructor from
// zero-value instances, so that Validate methods can reject the latter.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// provided and the object was not built through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in value
// objects and commands, set it via NewConstructorGuard in the constructor, and
// call Validate before trusting the instance.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. A zero-value guard
// returns validationError, or ErrDefaultConstructorGuard when it is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
