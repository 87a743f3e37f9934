package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/usecases/listing"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
)

func propertyFilters(p *queryParser) domain.PropertyFilters {
	filters := domain.PropertyFilters{
		Area:     p.get("area"),
		MinPrice: p.getFloat("min_price"),
		MaxPrice: p.getFloat("max_price"),
		MinSize:  p.getFloat("min_size"),
		MaxSize:  p.getFloat("max_size"),
		Featured: p.getBool("featured"),
		Pagination: domain.Pagination{
			Page:     p.getInt("page"),
			PageSize: p.getInt("page_size"),
		},
	}

	if raw := p.get("type"); raw != "" {
		t := domain.PropertyType(raw)
		if !t.Valid() {
			p.fail("type")
		}
		filters.Type = &t
	}
	if raw := p.get("listing"); raw != "" {
		l := domain.ListingType(raw)
		if !l.Valid() {
			p.fail("listing")
		}
		filters.Listing = &l
	}
	if raw := p.get("status"); raw != "" {
		s := domain.PropertyStatus(raw)
		if !s.Valid() {
			p.fail("status")
		}
		filters.Statuses = []domain.PropertyStatus{s}
	}

	return filters
}

// ListProperties is the public catalogue; drafts are never listed.
func ListProperties(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		filters := propertyFilters(p)
		if !p.check(w) {
			return
		}
		filters.PublicOnly = true
		for _, s := range filters.Statuses {
			if !s.Public() {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid query parameter \"status\"", nil)
				return
			}
		}

		page, err := service.List(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "list_properties")
			return
		}

		writeJSON(w, r, http.StatusOK, page)
	}
}

func GetPropertyBySlug(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")

		property, err := service.GetPublic(r.Context(), slug)
		if err != nil {
			writeServiceError(w, r, err, "get_property")
			return
		}

		writeJSON(w, r, http.StatusOK, property)
	}
}

func NearbyProperties(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		lat := p.getFloat("lat")
		lng := p.getFloat("lng")
		radius := p.getFloat("radius_km")
		limit := p.getInt("limit")
		if !p.check(w) {
			return
		}
		if lat == nil || lng == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "lat and lng are required", nil)
			return
		}

		query := listing.NearbyQuery{Latitude: *lat, Longitude: *lng, Limit: limit}
		if radius != nil {
			query.RadiusKm = *radius
		}

		properties, err := service.Nearby(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err, "nearby_properties")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"items": properties})
	}
}

func AdminListProperties(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		filters := propertyFilters(p)
		if !p.check(w) {
			return
		}

		page, err := service.List(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "admin_list_properties")
			return
		}

		writeJSON(w, r, http.StatusOK, page)
	}
}

func CreateProperty(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.PropertyInput
		if !decodeBody(w, r, &input) {
			return
		}

		property, err := service.Create(r.Context(), &input)
		if err != nil {
			writeServiceError(w, r, err, "create_property")
			return
		}

		writeJSON(w, r, http.StatusCreated, property)
	}
}

func GetProperty(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		property, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "get_property")
			return
		}

		writeJSON(w, r, http.StatusOK, property)
	}
}

func UpdateProperty(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdatePropertyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		property, err := service.Update(r.Context(), id, &req)
		if err != nil {
			writeServiceError(w, r, err, "update_property")
			return
		}

		writeJSON(w, r, http.StatusOK, property)
	}
}

func DeleteProperty(service listing.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "delete_property")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
