package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/usecases/booking"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/utils"
)

func GetAvailableSlots(service booking.Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "date is required", nil)
			return
		}

		slots, err := service.GetAvailableSlots(r.Context(), date)
		if err != nil {
			writeServiceError(w, r, err, "available_slots")
			return
		}

		writeJSON(w, r, http.StatusOK, slots)
	}
}

func BookConsultation(service booking.Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.BookingRequest
		if !decodeBody(w, r, &req) {
			return
		}

		consultation, err := service.BookConsultation(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "book_consultation")
			return
		}

		writeJSON(w, r, http.StatusCreated, map[string]any{
			"success":      true,
			"reference":    consultation.Reference,
			"consultation": consultation,
		})
	}
}

// ListConsultations filters by status, client and a from/to date window
// (YYYY-MM-DD, both inclusive, in the business timezone).
func ListConsultations(service booking.Booker, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		filters := domain.ConsultationFilters{
			ClientID: p.getInt64("client_id"),
			Pagination: domain.Pagination{
				Page:     p.getInt("page"),
				PageSize: p.getInt("page_size"),
			},
		}

		if raw := p.get("status"); raw != "" {
			status := domain.ConsultationStatus(raw)
			if !status.Valid() {
				p.fail("status")
			}
			filters.Status = &status
		}
		if raw := p.get("from"); raw != "" {
			from, err := utils.ParseDateIn(raw, loc)
			if err != nil {
				p.fail("from")
			}
			filters.From = &from
		}
		if raw := p.get("to"); raw != "" {
			to, err := utils.ParseDateIn(raw, loc)
			if err != nil {
				p.fail("to")
			}
			to = utils.EndOfDay(to)
			filters.To = &to
		}
		if !p.check(w) {
			return
		}

		page, err := service.List(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "list_consultations")
			return
		}

		writeJSON(w, r, http.StatusOK, page)
	}
}

func GetConsultation(service booking.Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		consultation, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "get_consultation")
			return
		}

		writeJSON(w, r, http.StatusOK, consultation)
	}
}

func UpdateConsultationStatus(service booking.Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateConsultationStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Status == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "status is required", nil)
			return
		}

		consultation, err := service.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			writeServiceError(w, r, err, "update_consultation_status")
			return
		}

		writeJSON(w, r, http.StatusOK, consultation)
	}
}
