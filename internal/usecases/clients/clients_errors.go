package clients

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidTransition = errors.New("lead status transition not allowed")
	ErrInvalidStatus     = errors.New("unknown lead status")
	ErrInvalidBudget     = errors.New("budget_min must not exceed budget_max")
	ErrClientHasBookings = errors.New("client has consultations")
	ErrDatabaseOperation = errors.New("database operation failed")
)

type ClientError struct {
	Err     error
	Code    string
	Details any
}

func (e *ClientError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func NewClientError(baseErr error, code string, details any) *ClientError {
	return &ClientError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
