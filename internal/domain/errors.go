package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeTransactionNotFound  = "TRANSACTION_NOT_FOUND"
	ErrCodeProviderNotFound     = "PROVIDER_NOT_FOUND"
	ErrCodeDuplicateTransaction = "DUPLICATE_TRANSACTION"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
)

func NewTransactionNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeTransactionNotFound,
		Message: fmt.Sprintf("transaction with ID %s not found", id),
	}
}

func NewProviderNotFoundError(code string) *DomainError {
	return &DomainError{
		Code:    ErrCodeProviderNotFound,
		Message: fmt.Sprintf("provider %s not found", code),
	}
}

func NewDuplicateTransactionError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicateTransaction,
		Message: fmt.Sprintf("transaction with ID %s already exists", id),
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidAmountError(amount string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %q", amount),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound reports whether err is either of the not-found codes. Callers
// must never conflate this with a failed transaction.
func IsNotFound(err error) bool {
	return IsErrorCode(err, ErrCodeTransactionNotFound) || IsErrorCode(err, ErrCodeProviderNotFound)
}
