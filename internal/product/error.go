package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameExists      = errors.New("product name already exists")

	ErrNameRequired      = errors.New("product name is required")
	ErrSKURequired       = errors.New("sku is required")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidPrice      = errors.New("price must be positive")
	ErrInvalidStock      = errors.New("stock must be a whole number from 0 to 2147483647")
	ErrInvalidPriceRange = errors.New("minPrice cannot be greater than maxPrice")

	PgUniqueViolation = "23505"
)

// IsValidationError reports whether err is caused by bad caller input.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNameRequired, ErrSKURequired, ErrInvalidCategory,
		ErrInvalidPrice, ErrInvalidStock, ErrInvalidPriceRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
