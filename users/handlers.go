package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/auth"
	"github.com/nora-sch/s-r-portfolio/authz"
)

// UserHandlers provides the HTTP layer for user operations.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleRegister registers a new user. Public: no authentication required.
// Responds 201 with the owner view of the new profile.
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		// The new user is the owner of their own profile.
		owner := authz.Requester{UserID: user.ID, Roles: user.Roles}
		auth.WriteJSON(w, http.StatusCreated, user.ToProfile(owner))
	}
}

// HandleGetProfile returns a user profile. Requires authentication; email and
// roles are only present when the requester is the user or an admin.
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, user.ToProfile(requester))
	}
}

// HandleUpdateProfile updates the requester's own profile fields.
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		user, err := h.service.UpdateProfile(r.Context(), requester, chi.URLParam(r, "id"), &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, user.ToProfile(requester))
	}
}

// HandleResetPassword runs the password-reset flow and returns a fresh token.
func (h *UserHandlers) HandleResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		tokens, err := h.service.ResetPassword(r.Context(), requester, chi.URLParam(r, "id"), &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, tokens)
	}
}
