// Package errors provides the structured error types for the Hearth API.
// Every service-layer failure is an *AppError so handlers can return
// consistent responses without leaking internal details. All ledger errors
// are precondition-style rejections: state is guaranteed unchanged when one
// is returned.
package errors

import "net/http"

// AppError is a structured application error carrying a stable error code,
// a human-readable message, the HTTP status to respond with, and an
// optional wrapped internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as the wrapped cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrNotAuthorized      = &AppError{Code: "NOT_AUTHORIZED", Message: "Only the household creator may perform this operation", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Household errors.
var (
	ErrHouseholdNotFound  = &AppError{Code: "HOUSEHOLD_NOT_FOUND", Message: "Household not found", StatusCode: http.StatusNotFound}
	ErrHouseholdInactive  = &AppError{Code: "HOUSEHOLD_INACTIVE", Message: "Household is deactivated", StatusCode: http.StatusConflict}
	ErrUserNotInHousehold = &AppError{Code: "USER_NOT_IN_HOUSEHOLD", Message: "User is not an active member of this household", StatusCode: http.StatusForbidden}
	ErrAlreadyMember      = &AppError{Code: "ALREADY_MEMBER", Message: "User is already an active member of this household", StatusCode: http.StatusConflict}
	ErrCapacityExceeded   = &AppError{Code: "CAPACITY_EXCEEDED", Message: "Household member limit reached", StatusCode: http.StatusConflict}
)

// Expense errors.
var (
	ErrExpenseNotFound    = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvalidAmount      = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive integer", StatusCode: http.StatusBadRequest}
	ErrInvalidExpenseType = &AppError{Code: "INVALID_EXPENSE_TYPE", Message: "Unsupported expense or allocation type", StatusCode: http.StatusBadRequest}
	ErrInvalidAllocation  = &AppError{Code: "INVALID_ALLOCATION", Message: "Allocation basis points are invalid", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Settlement errors.
var (
	ErrSettlementNotFound = &AppError{Code: "SETTLEMENT_NOT_FOUND", Message: "Settlement not found", StatusCode: http.StatusNotFound}
	ErrInsufficientFunds  = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "Settlement exceeds the outstanding balance", StatusCode: http.StatusBadRequest}
)
