// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every engine package. Compare with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidRange    = errors.New("invalid range")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid state")
)

// Error carries the operation and entity id an engine error relates to.
type Error struct {
	Op  string // operation that failed, e.g. "cart.SetQuantity"
	ID  string // optional id of the entity involved
	Err error
}

// Error returns the string representation of the error
func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an operation on an absent entity.
func NotFound(op, id string) error {
	return &Error{Op: op, ID: id, Err: ErrNotFound}
}

// InvalidQuantity reports a quantity that is not a positive integer.
func InvalidQuantity(op string, quantity int) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)}
}

// InvalidRange reports a numeric value outside its allowed bounds.
func InvalidRange(op, detail string) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrInvalidRange, detail)}
}

// InvalidInput reports a malformed argument.
func InvalidInput(op, detail string) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %s", ErrInvalidInput, detail)}
}

// InvalidState reports an operation that is not allowed in the current state.
func InvalidState(op, id, detail string) error {
	return &Error{Op: op, ID: id, Err: fmt.Errorf("%w: %s", ErrInvalidState, detail)}
}
