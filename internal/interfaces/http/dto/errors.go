package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the session token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the session token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationLength: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized codes
// used on the wire.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":         ErrCodeNotFound,
	"SESSION_NOT_FOUND": ErrCodeNotFound,
	"PRODUCT_NOT_FOUND": ErrCodeNotFound,
	"OBJECT_NOT_FOUND":  ErrCodeNotFound,
	"LINE_NOT_FOUND":    ErrCodeNotFound,
	"NO_LOGO":           ErrCodeNotFound,

	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"BRAND_IN_USE":         ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,

	"INVALID_NAME":                ErrCodeInvalidInput,
	"INVALID_CODE":                ErrCodeInvalidInput,
	"INVALID_BARCODE":             ErrCodeInvalidInput,
	"INVALID_UNIT":                ErrCodeInvalidInput,
	"INVALID_PRICE":               ErrCodeInvalidInput,
	"INVALID_QUANTITY":            ErrCodeInvalidInput,
	"INVALID_BRAND":               ErrCodeInvalidInput,
	"INVALID_PRODUCT":             ErrCodeInvalidInput,
	"INVALID_PRODUCT_NAME":        ErrCodeInvalidInput,
	"INVALID_CASHIER":             ErrCodeInvalidInput,
	"INVALID_SESSION":             ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER":        ErrCodeInvalidInput,
	"INVALID_CUSTOM_ORDER_NUMBER": ErrCodeValidationLength,
	"INVALID_LOGO":                ErrCodeInvalidInput,
	"INVALID_STORAGE_KEY":         ErrCodeInvalidInput,
	"DISALLOWED_CONTENT_TYPE":     ErrCodeInvalidInput,
	"FILE_TOO_LARGE":              ErrCodeInvalidInput,
	"UNKNOWN_MODEL":               ErrCodeInvalidInput,
	"INVALID_INPUT":               ErrCodeInvalidInput,

	"INVALID_STATE":    ErrCodeInvalidState,
	"SESSION_CLOSED":   ErrCodeInvalidState,
	"PRODUCT_INACTIVE": ErrCodeInvalidState,
	"ALREADY_ACTIVE":   ErrCodeInvalidState,
	"ALREADY_INACTIVE": ErrCodeInvalidState,
	"EMPTY_ORDER":      ErrCodeInvalidState,

	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"TOKEN_EXPIRED":  ErrCodeTokenExpired,
	"TOKEN_INVALID":  ErrCodeTokenInvalid,
	"BAD_REQUEST":    ErrCodeBadRequest,
	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already in the new format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
