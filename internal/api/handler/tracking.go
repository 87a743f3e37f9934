package handler

import (
	"net/http"

	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/usecases/tracking"
)

func StartSession(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SessionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.UserAgent = r.UserAgent()
		req.IPAddress = clientIP(r)

		session, err := service.StartSession(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "start_session")
			return
		}

		writeJSON(w, r, http.StatusCreated, session)
	}
}

func RecordPageView(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.PageViewRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.UserAgent = r.UserAgent()
		req.IPAddress = clientIP(r)

		view, err := service.RecordPageView(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "record_pageview")
			return
		}

		writeJSON(w, r, http.StatusCreated, view)
	}
}

func RecordEvent(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.EventRequest
		if !decodeBody(w, r, &req) {
			return
		}

		event, err := service.RecordEvent(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "record_event")
			return
		}

		writeJSON(w, r, http.StatusCreated, event)
	}
}

// CaptureLead stores a contact form submission. CRM and mail delivery happen
// inside the usecase and never fail the request.
func CaptureLead(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LeadRequest
		if !decodeBody(w, r, &req) {
			return
		}

		client, err := service.CaptureLead(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "capture_lead")
			return
		}

		writeJSON(w, r, http.StatusCreated, map[string]any{
			"success":   true,
			"client_id": client.ID,
		})
	}
}
