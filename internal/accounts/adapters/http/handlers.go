package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/s-urunov-dev/bookstore/internal/accounts/app"
	"github.com/s-urunov-dev/bookstore/internal/apperrors"
	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/httpapi"
)

// Handler exposes HTTP endpoints for registration, tokens and blocking.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the account handlers to the provided ServeMux. Token
// endpoints are unauthenticated; block/unblock are admin-only.
func (h *Handler) Register(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("/v1/auth/register", h.register)
	mux.HandleFunc("/v1/auth/token", h.token)
	mux.HandleFunc("/v1/auth/token/refresh", h.refresh)
	mux.Handle("/v1/users/block", mw.RequireAdmin(http.HandlerFunc(h.block)))
	mux.Handle("/v1/users/unblock", mw.RequireAdmin(http.HandlerFunc(h.unblock)))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload app.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if _, err := h.service.Register(r.Context(), payload); err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Created user successfully."})
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload app.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := h.service.Login(r.Context(), payload)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	access, err := h.service.Refresh(r.Context(), payload.Refresh)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"access": access})
}

type userActionPayload struct {
	UserID string `json:"user_id"`
}

func (h *Handler) block(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.service.Block)
}

func (h *Handler) unblock(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.service.Unblock)
}

func (h *Handler) userAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID string) (string, error)) {
	if r.Method != http.MethodPost {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload userActionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if payload.UserID == "" {
		httpapi.WriteAppError(w, apperrors.Validation("user_id", "user_id is required"))
		return
	}

	message, err := action(r.Context(), payload.UserID)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}
