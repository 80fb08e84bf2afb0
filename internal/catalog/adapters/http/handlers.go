package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/catalog/app"
	"github.com/s-urunov-dev/bookstore/internal/catalog/ports"
	"github.com/s-urunov-dev/bookstore/internal/httpapi"
)

// Handler exposes HTTP endpoints for catalog operations. Reads are open to
// any authenticated user; writes require the admin role.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the catalog handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux, mw *auth.Middleware) {
	mux.Handle("/v1/books", mw.RequireAuth(http.HandlerFunc(h.handleBooks)))
	mux.Handle("/v1/books/", mw.RequireAuth(http.HandlerFunc(h.handleBookByID)))
}

func (h *Handler) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listBooks(w, r)
	case http.MethodPost:
		if !requireAdmin(w, r) {
			return
		}
		h.createBook(w, r)
	default:
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleBookByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/books/"), "/")
	if id == "" {
		httpapi.WriteError(w, http.StatusNotFound, "book not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getBook(w, r, id)
	case http.MethodPut:
		if !requireAdmin(w, r) {
			return
		}
		h.updateBook(w, r, id)
	case http.MethodDelete:
		if !requireAdmin(w, r) {
			return
		}
		h.deleteBook(w, r, id)
	default:
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var payload app.BookInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	book, err := h.service.CreateBook(r.Context(), payload)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"book": book})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request, id string) {
	book, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"book": book})
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	filter := ports.ListFilter{}
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			filter.Page = page
		}
	}
	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			filter.PageSize = pageSize
		}
	}

	books, err := h.service.ListBooks(r.Context(), filter)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"books": books})
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request, id string) {
	var payload app.BookInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	book, err := h.service.UpdateBook(r.Context(), id, payload)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"book": book})
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok || !identity.IsAdmin() {
		httpapi.WriteError(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}
