package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError carries the HTTP status the surface should answer with.
type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeGateway      = "GATEWAY_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    err.Error(),
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewGatewayCallError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeGateway,
		Message:    "gateway communication failure",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "an internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// InitiationError is returned when a transaction was created locally but the
// gateway call failed. The local id travels with the error so the caller can
// reference the failed attempt.
type InitiationError struct {
	TransactionID string
	Err           error
}

func (e *InitiationError) Error() string {
	return fmt.Sprintf("initiation failed for transaction %s: %v", e.TransactionID, e.Err)
}

func (e *InitiationError) Unwrap() error {
	return e.Err
}

func IsInitiationError(err error) (*InitiationError, bool) {
	var initErr *InitiationError
	ok := errors.As(err, &initErr)
	return initErr, ok
}
