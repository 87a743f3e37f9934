package booking

import (
	"errors"
	"fmt"

	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrMissingRequiredData  = errors.New("missing required data")
	ErrInvalidDate          = errors.New("invalid date")
	ErrDateOutOfRange       = errors.New("date outside the booking window")
	ErrSlotUnavailable      = errors.New("slot is not bookable")
	ErrSlotTaken            = errors.New("slot already taken")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrDatabaseOperation    = errors.New("database operation failed")
)

type BookingError struct {
	Err     error
	Code    string
	Details any
}

func (e *BookingError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func NewBookingError(baseErr error, code string, details any) *BookingError {
	return &BookingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func invalid(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return NewBookingError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, err.Error())
	}

	switch code := verr.Code(); code {
	case apiErrors.ErrInvalidEmail:
		return NewBookingError(ErrInvalidEmail, code, verr.Fields)
	case apiErrors.ErrMissingRequiredData:
		return NewBookingError(ErrMissingRequiredData, code, verr.Fields)
	default:
		return NewBookingError(ErrInvalidRequest, code, verr.Fields)
	}
}

func databaseError(err error) error {
	return NewBookingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, nil)
}

func slotTaken(label string) error {
	return NewBookingError(ErrSlotTaken, apiErrors.ErrSlotTaken, label)
}
