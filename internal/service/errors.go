package service

import "errors"

var (
	ErrProductNotSelected = errors.New("please select a product")
	ErrProductNotFound    = errors.New("product not found")
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrMissingField       = errors.New("required field is empty")
	ErrInvalidQuery       = errors.New("invalid query")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrInvalidSection     = errors.New("invalid section")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("dashboard requires an admin user")
	ErrSessionNotFound    = errors.New("session not found")
)

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrProductNotSelected,
		ErrInvalidRating,
		ErrMissingField,
		ErrInvalidQuery,
		ErrPasswordMismatch,
		ErrInvalidRole,
		ErrInvalidSection,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err refers to a missing entity or session.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}
