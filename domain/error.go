// Package domain holds the error taxonomy shared by usecases and handlers.
package domain

import "errors"

// AppError carries a user-facing message together with the HTTP status code
// the delivery layer should map it to.
type AppError struct {
	Message string
	Code    int
}

func (e *AppError) Error() string {
	return e.Message
}

// Vendor and account errors
var (
	ErrVendorNotFound = &AppError{
		Message: "vendor not found",
		Code:    404,
	}
	ErrVendorEmailRequired = &AppError{
		Message: "vendor has no email address",
		Code:    400,
	}
	ErrAccountAlreadyExists = &AppError{
		Message: "an account already exists for this vendor",
		Code:    409,
	}
	ErrAccountNotProvisioned = &AppError{
		Message: "no account has been created for this vendor",
		Code:    404,
	}
	ErrEmailAlreadyExists = &AppError{
		Message: "vendor with this email already exists",
		Code:    409,
	}
	ErrInvalidStatus = &AppError{
		Message: "invalid registration status",
		Code:    400,
	}
	ErrAuthProvider = &AppError{
		Message: "auth provider request failed",
		Code:    502,
	}
)

// Catalog errors
var (
	ErrCityNotFound = &AppError{
		Message: "city not found",
		Code:    404,
	}
	ErrCityAlreadyExists = &AppError{
		Message: "city with this name already exists",
		Code:    409,
	}
	ErrVehicleNotFound = &AppError{
		Message: "vehicle not found",
		Code:    404,
	}
	ErrInvalidCategory = &AppError{
		Message: "invalid vehicle category",
		Code:    400,
	}
	ErrBookingNotFound = &AppError{
		Message: "booking not found",
		Code:    404,
	}
	ErrInvalidID = &AppError{
		Message: "invalid id",
		Code:    400,
	}
)

// ErrNotFound is the repository-level sentinel translated by usecases into a
// concrete AppError.
var ErrNotFound = errors.New("not found")
