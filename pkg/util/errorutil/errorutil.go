package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Domain error codes surfaced to the presentation layer. Conflict detection may
// happen either before a write (check-then-act) or at the storage layer (unique
// constraint); both paths must map to the same code.
const (
	CodeAreaLeadZoneFull      = "area_lead_zone_full"
	CodeManagerExists         = "manager_exists"
	CodeSubManagerExists      = "sub_manager_exists"
	CodeGlobalUser            = "global_user"
	CodeManagerProtected      = "manager_protected"
	CodeRestaurantMismatch    = "restaurant_mismatch"
	CodeRestaurantInvalid     = "restaurant_invalid"
	CodeAreaLeadOnlyEmployee  = "area_lead_only_employee"
	CodeMissing               = "missing"
	CodeInvalidEmail          = "invalid_email"
	CodeWeakPassword          = "weak_password"
	CodeInvalidRole           = "invalid_role"
	CodeNoEffectiveRestaurant = "no_effective_restaurant"
	CodeBadPassword           = "bad_password"
	CodeBadFile               = "bad_file"
	CodeFileTooLarge          = "file_too_large"
	CodeDisabled              = "disabled"
	CodeBadCredentials        = "bad"
	CodeNotFound              = "not_found"
	CodeUnauthorized          = "unauthorized"
	CodeForbidden             = "forbidden"
	CodeInternal              = "internal_error"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(code, message string) error {
	return NewDomainError(code, message, http.StatusBadRequest, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(code, message string) error {
	return NewDomainError(code, message, http.StatusUnauthorized, nil)
}

func NewForbidden(code, message string) error {
	return NewDomainError(code, message, http.StatusForbidden, nil)
}

func NewConflict(code, message string, details map[string]any) error {
	return NewDomainError(code, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Code extracts the domain code from an error, or internal_error for unknown errors.
func Code(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
