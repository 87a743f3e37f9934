package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/middleware"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListAdmins(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "list_users")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"items": users})
	}
}

func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateAdminRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := validation.Struct(&req); err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := service.CreateAdmin(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "create_user")
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	}
}

// UpdateUser changes name, role or active flag. Admins cannot disable or
// demote themselves.
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateAdminRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		if err := validation.Struct(&req); err != nil {
			writeValidationError(w, err)
			return
		}

		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.UserID == id {
			if (req.Active != nil && !*req.Active) || (req.RoleID != nil && *req.RoleID != claims.UserRoleID) {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "you cannot disable or demote your own account", nil)
				return
			}
		}

		user, err := service.UpdateAdmin(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "update_user")
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		apiErrors.WriteError(w, verr.Code(), verr.Error(), verr.Fields)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
}
