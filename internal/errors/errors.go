// Package errors provides the failure kinds raised by the teller engine
// and its collaborators. All service-layer errors use AppError so callers
// can branch on a stable code and HTTP handlers can respond without
// leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Lookup errors.
var (
	ErrCurrencyNotFound        = &AppError{Code: "CURRENCY_NOT_FOUND", Message: "Currency is not registered at this till", StatusCode: http.StatusNotFound}
	ErrTotalizerNotFound       = &AppError{Code: "TOTALIZER_NOT_FOUND", Message: "Totalizer is not registered at this till", StatusCode: http.StatusNotFound}
	ErrTransactionTypeNotFound = &AppError{Code: "TRANSACTION_TYPE_NOT_FOUND", Message: "No transaction type is configured for this code and subcode", StatusCode: http.StatusNotFound}
	ErrOperationNotFound       = &AppError{Code: "OPERATION_NOT_FOUND", Message: "No movement exists with this operation number", StatusCode: http.StatusNotFound}
	ErrProductNotFound         = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product is unknown to the price service", StatusCode: http.StatusNotFound}
)

// Execution errors.
var (
	ErrCurrencyMismatch = &AppError{Code: "CURRENCY_MISMATCH", Message: "Movement currencies disagree with the configured transaction type", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount    = &AppError{Code: "INVALID_AMOUNT", Message: "Movement amount is invalid for this transaction type", StatusCode: http.StatusBadRequest}
	ErrNegativeBalance  = &AppError{Code: "NEGATIVE_BALANCE", Message: "Operation would drive a balance below zero", StatusCode: http.StatusBadRequest}
	ErrAlreadyReversed  = &AppError{Code: "ALREADY_REVERSED", Message: "Movement has already been reversed", StatusCode: http.StatusConflict}
)

// Configuration errors.
var (
	ErrConfigurationMissing = &AppError{Code: "CONFIGURATION_MISSING", Message: "Transaction catalog file is missing", StatusCode: http.StatusInternalServerError}
	ErrDuplicateCode        = &AppError{Code: "DUPLICATE_CODE", Message: "An entry with this code already exists", StatusCode: http.StatusConflict}
)

// Collaborator errors.
var (
	ErrResolverUnavailable = &AppError{Code: "RESOLVER_UNAVAILABLE", Message: "Rate or price service did not answer", StatusCode: http.StatusBadGateway}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
