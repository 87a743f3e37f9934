package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/property-leads-api/internal/usecases/analytics"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	"github.com/vfg2006/property-leads-api/internal/usecases/booking"
	"github.com/vfg2006/property-leads-api/internal/usecases/clients"
	"github.com/vfg2006/property-leads-api/internal/usecases/listing"
	"github.com/vfg2006/property-leads-api/internal/usecases/tracking"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

// usecaseError extracts the API code carried by a typed usecase error.
func usecaseError(err error) (code string, message string, details any, ok bool) {
	var (
		trackingErr  *tracking.TrackingError
		bookingErr   *booking.BookingError
		listingErr   *listing.ListingError
		clientErr    *clients.ClientError
		analyticsErr *analytics.AnalyticsError
		authErr      *authenticating.AuthError
	)

	switch {
	case errors.As(err, &trackingErr):
		return trackingErr.Code, trackingErr.Err.Error(), trackingErr.Details, true
	case errors.As(err, &bookingErr):
		return bookingErr.Code, bookingErr.Err.Error(), bookingErr.Details, true
	case errors.As(err, &listingErr):
		return listingErr.Code, listingErr.Err.Error(), listingErr.Details, true
	case errors.As(err, &clientErr):
		return clientErr.Code, clientErr.Err.Error(), clientErr.Details, true
	case errors.As(err, &analyticsErr):
		return analyticsErr.Code, analyticsErr.Err.Error(), analyticsErr.Details, true
	case errors.As(err, &authErr):
		var details any
		if authErr.Details != "" {
			details = authErr.Details
		}
		return authErr.Code, authErr.Err.Error(), details, true
	}
	return "", "", nil, false
}

// writeServiceError answers with the code of a typed usecase error. Anything
// else is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	logger := log.ForContext(r.Context()).WithError(err).WithField("action", action)

	code, message, details, ok := usecaseError(err)
	if !ok {
		logger.Error("unexpected error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal server error", nil)
		return
	}

	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.Error("request failed")
		apiErrors.WriteError(w, code, "internal server error", nil)
		return
	}

	logger.WithField("code", code).Info("request rejected")
	apiErrors.WriteError(w, code, message, details)
}
