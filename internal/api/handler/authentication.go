package handler

import (
	"net/http"

	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

// handleLoginError answers every credential failure the same way so the
// response does not reveal which emails are registered.
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if authenticating.IsCredentialsError(err) {
		log.ForContext(r.Context()).WithError(err).Info("login rejected")
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "invalid email or password", nil)
		return
	}

	writeServiceError(w, r, err, "login")
}

// GetMe returns the profile of the authenticated admin.
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		user, err := service.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "get_me")
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		var req ChangePasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.CurrentPassword == "" || req.NewPassword == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "current_password and new_password are required", nil)
			return
		}

		if err := service.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, r, err, "change_password")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
	}
}
