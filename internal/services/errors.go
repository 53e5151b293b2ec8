package services

import "errors"

// Authentication failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateLogin     = errors.New("login name already taken")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrUnknownRole        = errors.New("unknown role")
)

// Authorization failures.
var (
	ErrForbidden = errors.New("forbidden")
)

// Order failures.
var (
	ErrUnknownProduct     = errors.New("unknown product")
	ErrUnknownCourier     = errors.New("unknown courier")
	ErrUnknownCustomer    = errors.New("unknown customer")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrCustomNameRequired = errors.New("custom courier name required")
	ErrIllegalTransition  = errors.New("illegal order status transition")
	ErrOrderNotFound      = errors.New("order not found")
)

// Store failures: driver or connection errors surfaced at the component
// boundary instead of leaking raw driver messages.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Payment failures.
var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrInvalidPaymentMode       = errors.New("invalid payment mode")
	ErrPaymentExists            = errors.New("order already has a payment")
	ErrOrderNotPayable          = errors.New("order is not payable")
	ErrIllegalPaymentTransition = errors.New("illegal payment status transition")
)
