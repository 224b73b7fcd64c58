package services

import "errors"

var (
	// ErrEmptyCart is returned when checkout finds no cart or no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductGone is returned when a cart references a product that no
	// longer exists at checkout time.
	ErrProductGone = errors.New("product in cart no longer exists")
	// ErrForbidden is returned when the acting identity does not own the
	// target cart, order or store.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is returned for a disallowed order status change.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrNotPurchased is returned when a review targets a product or store
	// the user has never ordered from.
	ErrNotPurchased = errors.New("no prior order for review target")
	// ErrInvalidCredentials is returned for a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountLocked is returned when login attempts are exhausted.
	ErrAccountLocked = errors.New("too many failed login attempts")
)

// FieldError is a validation failure tied to a specific request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// NewFieldError creates a FieldError.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
