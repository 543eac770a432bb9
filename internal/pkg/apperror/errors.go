package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeNetworkError          Code = "NETWORK_ERROR"
	CodeSessionCorrupted      Code = "SESSION_CORRUPTED"
	CodeSessionNotFound       Code = "SESSION_NOT_FOUND"
	CodeInvalidSessionId      Code = "INVALID_SESSION_ID"
	CodeActionExceededRetries Code = "ACTION_EXCEEDED_RETRIES"
	CodeValidation            Code = "VALIDATION_ERROR"
	CodeInternal              Code = "INTERNAL_ERROR"
)

// AppError is the classified error carried across service boundaries.
// Transient codes (NETWORK_ERROR) are retried internally; only user-facing
// codes reach the HTTP layer as rendered error states.
type AppError struct {
	Code   Code   `json:"code"`
	Detail string `json:"detail,omitempty"`
	Err    error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return string(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, detail string) *AppError {
	return &AppError{Code: code, Detail: detail}
}

func Wrap(code Code, detail string, err error) *AppError {
	return &AppError{Code: code, Detail: detail, Err: err}
}

var (
	NetworkError = func(detail string, err error) *AppError {
		return Wrap(CodeNetworkError, detail, err)
	}
	SessionCorrupted = func(detail string) *AppError {
		return New(CodeSessionCorrupted, detail)
	}
	SessionNotFound = func(detail string) *AppError {
		return New(CodeSessionNotFound, detail)
	}
	InvalidSessionId = func(detail string) *AppError {
		return New(CodeInvalidSessionId, detail)
	}
	ActionExceededRetries = func(detail string) *AppError {
		return New(CodeActionExceededRetries, detail)
	}
	Validation = func(detail string) *AppError {
		return New(CodeValidation, detail)
	}
)

// CodeOf extracts the classification of an error, defaulting to
// INTERNAL_ERROR for unclassified failures.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error code to the status rendered by the error
// middleware.
func HTTPStatus(code Code) int {
	switch code {
	case CodeSessionNotFound, CodeInvalidSessionId:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNetworkError:
		return http.StatusServiceUnavailable
	case CodeSessionCorrupted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
