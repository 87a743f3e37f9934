package analytics

import (
	"errors"
	"fmt"

	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
)

var (
	ErrInvalidRange       = errors.New("invalid date range")
	ErrInvalidMetric      = errors.New("unknown metric")
	ErrInvalidGranularity = errors.New("unknown granularity")
	ErrDatabaseOperation  = errors.New("database operation failed")
)

type AnalyticsError struct {
	Err     error
	Code    string
	Details any
}

func (e *AnalyticsError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func NewAnalyticsError(baseErr error, code string, details any) *AnalyticsError {
	return &AnalyticsError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func databaseError(err error) error {
	return NewAnalyticsError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, nil)
}
