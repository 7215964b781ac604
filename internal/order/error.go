package order

import (
	"errors"

	"bizdash-be/internal/pricing"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	ErrClientNameRequired   = errors.New("client name is required")
	ErrAddressRequired      = errors.New("delivery address is required")
	ErrDeliveryDateRequired = errors.New("expected delivery date is required")
	ErrInvalidDeliveryDate  = errors.New("expected delivery date is not a valid date")
	ErrNoItems              = errors.New("at least one product is required")
	ErrItemProductRequired  = errors.New("every line item needs a product")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrNegativeShipping     = errors.New("shipping cost cannot be negative")
	ErrInvalidSatisfaction  = errors.New("customer satisfaction must be 1, 2 or 3")
	ErrInvalidTransition    = errors.New("delivery status transition not allowed")
	ErrTotalTooLarge        = errors.New("order total is too large")
)

// IsValidationError reports whether err is caused by bad caller input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrClientNameRequired, ErrAddressRequired, ErrDeliveryDateRequired,
		ErrInvalidDeliveryDate, ErrNoItems, ErrItemProductRequired,
		ErrInvalidPaymentStatus, ErrNegativeShipping, ErrInvalidSatisfaction,
		ErrTotalTooLarge, pricing.ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
