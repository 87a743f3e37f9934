package tracking

import (
	"errors"
	"fmt"

	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrMissingRequiredData = errors.New("missing required data")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidProperties   = errors.New("event properties must be a JSON object")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

type TrackingError struct {
	Err     error
	Code    string
	Details any
}

func (e *TrackingError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TrackingError) Unwrap() error {
	return e.Err
}

func NewTrackingError(baseErr error, code string, details any) *TrackingError {
	return &TrackingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func invalid(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return NewTrackingError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, err.Error())
	}

	switch code := verr.Code(); code {
	case apiErrors.ErrInvalidEmail:
		return NewTrackingError(ErrInvalidEmail, code, verr.Fields)
	case apiErrors.ErrMissingRequiredData:
		return NewTrackingError(ErrMissingRequiredData, code, verr.Fields)
	default:
		return NewTrackingError(ErrInvalidRequest, code, verr.Fields)
	}
}

func databaseError(err error) error {
	return NewTrackingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, nil)
}
