package pantry

import "errors"

// Domain errors for pantry operations

var (
	// Entity validation errors
	ErrMissingID        = errors.New("pantry item id is required")
	ErrEmptyName        = errors.New("pantry item name must not be empty")
	ErrNegativeQuantity = errors.New("pantry item quantity cannot be negative")

	// Collection errors
	ErrItemNotFound = errors.New("pantry item not found")
	ErrDuplicateID  = errors.New("pantry item id already exists")
)
