package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("operation not allowed in current order status")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrInvalidOrder       = errors.New("order must contain at least one item with quantity >= 1")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports client-supplied input that fails a domain rule.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError reports a line item whose requested quantity exceeds
// current stock. Placement fails as a whole; no stock is touched.
type InsufficientStockError struct {
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested", e.ItemName, e.Available, e.Requested)
}

// InvalidTransitionError reports a status change that skips, repeats, or
// reverses the fixed Pending -> Preparing -> Ready for Pickup -> Completed chain.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}
