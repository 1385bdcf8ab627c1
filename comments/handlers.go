package comments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/auth"
)

// CommentHandlers provides the HTTP layer for comments.
type CommentHandlers struct {
	service *CommentService
}

// NewCommentHandlers creates new CommentHandlers.
func NewCommentHandlers(service *CommentService) *CommentHandlers {
	return &CommentHandlers{service: service}
}

// RegisterPublicRoutes registers the unauthenticated comment routes.
func (h *CommentHandlers) RegisterPublicRoutes(router chi.Router) {
	router.Get("/", h.handleListByPost())
	router.Get("/{id}", h.handleGet())
}

// RegisterProtectedRoutes registers the routes that require a bearer token.
func (h *CommentHandlers) RegisterProtectedRoutes(router chi.Router) {
	router.Post("/", h.handleCreate())
	router.Put("/{id}", h.handleUpdate())
}

// handleCreate serves POST /comments for commentator-or-above requesters.
func (h *CommentHandlers) handleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req NewCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		comment, err := h.service.Create(r.Context(), requester, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, comment)
	}
}

// handleGet serves GET /comments/{id}. Public.
func (h *CommentHandlers) handleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, comment)
	}
}

// handleListByPost serves GET /comments?post_id={id}. Public.
func (h *CommentHandlers) handleListByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := r.URL.Query().Get("post_id")
		if postID == "" {
			auth.WriteError(w, r, apperror.NewBadRequestError("post_id query parameter is required", nil))
			return
		}

		comments, err := h.service.ListByPost(r.Context(), postID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, comments)
	}
}

// handleUpdate serves PUT /comments/{id} for the author or editors.
func (h *CommentHandlers) handleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, ok := auth.RequesterFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req UpdateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		comment, err := h.service.Update(r.Context(), requester, chi.URLParam(r, "id"), &req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, comment)
	}
}
