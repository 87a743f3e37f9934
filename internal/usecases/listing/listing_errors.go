package listing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrMissingRequiredData = errors.New("missing required data")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPropertyInUse       = errors.New("property is referenced by consultations")
	ErrSlugTaken           = errors.New("slug already in use")
	ErrInvalidLocation     = errors.New("invalid coordinates")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

type ListingError struct {
	Err     error
	Code    string
	Details any
}

func (e *ListingError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

func NewListingError(baseErr error, code string, details any) *ListingError {
	return &ListingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func invalid(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, err.Error())
	}
	if verr.OnlyRequired() {
		return NewListingError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, verr.Fields)
	}
	return NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, verr.Fields)
}

func databaseError(err error) error {
	return NewListingError(fmt.Errorf("%w: %v", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, nil)
}

func notFound(ref any) error {
	return NewListingError(ErrPropertyNotFound, apiErrors.ErrNotFound, ref)
}
