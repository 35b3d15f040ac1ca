package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMissingFields indicates that required request fields were absent.
var ErrMissingFields = errors.New("missing required fields")

// ErrInvalidAmount indicates a monetary amount outside the accepted range.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidCollectionSet indicates that some requested collections cannot be claimed.
var ErrInvalidCollectionSet = errors.New("invalid collection set")

// ErrNoEligibleCollections indicates that a remittance selection resolved to nothing.
var ErrNoEligibleCollections = errors.New("no eligible collections")

// ErrStorageConflict indicates a transient storage conflict (serialization failure, deadlock).
// Callers may retry the whole operation.
var ErrStorageConflict = errors.New("storage conflict")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewMissingFieldsError names the absent fields while still matching ErrMissingFields.
func NewMissingFieldsError(fields ...string) error {
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(fields, ", "))
}

// InvalidCollectionSetError reports which requested collections were missing or ineligible.
type InvalidCollectionSetError struct {
	Requested    int
	OffendingIDs []string
}

// NewInvalidCollectionSetError builds the error for the given offending ids.
func NewInvalidCollectionSetError(requested int, offending []string) *InvalidCollectionSetError {
	return &InvalidCollectionSetError{Requested: requested, OffendingIDs: offending}
}

// Offending is the number of requested collections that could not be claimed.
func (e *InvalidCollectionSetError) Offending() int { return len(e.OffendingIDs) }

func (e *InvalidCollectionSetError) Error() string {
	return fmt.Sprintf("%s: %d of %d collections missing or ineligible",
		ErrInvalidCollectionSet.Error(), e.Offending(), e.Requested)
}

func (e *InvalidCollectionSetError) Is(target error) bool {
	return target == ErrInvalidCollectionSet
}
