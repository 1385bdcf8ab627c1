package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/auth"
)

// PostHandlers provides the HTTP layer for blog posts.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// HandleList serves GET /blog and GET /blog/{page}: a public, paginated list
// of post links. The page defaults to 1 when absent; the limit query
// parameter (default 10) controls the page size. Out-of-range values are
// clamped by the service, so only non-numeric input is rejected.
func (h *PostHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit, err := listParams(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.List(r.Context(), page, limit)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// listParams extracts the page and limit from the request. An absent page
// means the first page; an absent limit is zero, which the service replaces
// with the default.
func listParams(r *http.Request) (page, limit int, err error) {
	page = 1
	if raw := chi.URLParam(r, "page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperror.NewBadRequestError("page must be an integer", nil)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperror.NewBadRequestError("limit must be an integer", nil)
		}
	}
	return page, limit, nil
}

// HandleGetBySlug serves GET /blog/post/{slug}. Public.
func (h *PostHandlers) HandleGetBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, post)
	}
}

// HandleGetByID serves GET /blog/post/id/{id}. Public.
func (h *PostHandlers) HandleGetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, post)
	}
}

// HandleCreate serves POST /blog/add for writer-or-above requesters.
func (h *PostHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		post, err := h.service.Create(r.Context(), requester, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, post)
	}
}

// HandleUpdate serves PUT /blog/edit/{id} for the author or admins.
func (h *PostHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		post, err := h.service.Update(r.Context(), requester, chi.URLParam(r, "id"), &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, post)
	}
}

// HandleDelete serves DELETE /blog/delete/{id} for the author or admins.
// Responds 204 No Content on success.
func (h *PostHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		if err := h.service.Delete(r.Context(), requester, chi.URLParam(r, "id")); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
