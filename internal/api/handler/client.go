package handler

import (
	"net/http"

	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/usecases/clients"
)

func ListClients(service clients.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		filters := domain.ClientFilters{
			Source: p.get("source"),
			Search: p.get("search"),
			Pagination: domain.Pagination{
				Page:     p.getInt("page"),
				PageSize: p.getInt("page_size"),
			},
		}
		if raw := p.get("status"); raw != "" {
			status := domain.LeadStatus(raw)
			filters.Status = &status
		}
		if !p.check(w) {
			return
		}

		page, err := service.List(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "list_clients")
			return
		}

		writeJSON(w, r, http.StatusOK, page)
	}
}

func GetClient(service clients.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		client, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "get_client")
			return
		}

		writeJSON(w, r, http.StatusOK, client)
	}
}

func UpdateClient(service clients.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateClientRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		client, err := service.Update(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "update_client")
			return
		}

		writeJSON(w, r, http.StatusOK, client)
	}
}

func DeleteClient(service clients.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "delete_client")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
