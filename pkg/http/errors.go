package http

import (
	"fmt"
	"net/http"
)

// AppError is the body entry for every non-validation failure.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithParam attaches a machine-readable detail.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// WithError keeps the cause for logs. It is never serialized.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func newAppError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func BadRequestError(message string) *AppError {
	return newAppError(http.StatusBadRequest, "ERR_BAD_REQUEST", message)
}

// UnsupportedError names a parameter value with no mapping, such as an
// unknown timeframe or strategy.
func UnsupportedError(field string, value interface{}) *AppError {
	e := newAppError(http.StatusBadRequest, "ERR_UNSUPPORTED", fmt.Sprintf("unsupported %s: %v", field, value))
	e.Field = field
	return e.WithParam("value", value)
}

// UnprocessableError reports a well-formed request the data cannot satisfy.
func UnprocessableError(code, message string) *AppError {
	return newAppError(http.StatusUnprocessableEntity, code, message)
}

// BadGatewayError reports a failed upstream collaborator.
func BadGatewayError(message string) *AppError {
	return newAppError(http.StatusBadGateway, "ERR_UPSTREAM", message)
}

func InternalError(message string) *AppError {
	return newAppError(http.StatusInternalServerError, "ERR_INTERNAL", message)
}
