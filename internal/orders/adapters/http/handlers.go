package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/s-urunov-dev/bookstore/internal/auth"
	"github.com/s-urunov-dev/bookstore/internal/httpapi"
	"github.com/s-urunov-dev/bookstore/internal/orders/app"
	"github.com/s-urunov-dev/bookstore/internal/orders/ports"
)

// Handler exposes HTTP endpoints for orders, invoices and payments. All
// routes require authentication; listings are scoped to the caller unless
// the caller is an admin.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux, mw *auth.Middleware) {
	mux.Handle("/v1/orders", mw.RequireAuth(http.HandlerFunc(h.handleOrders)))
	mux.Handle("/v1/orders/", mw.RequireAuth(http.HandlerFunc(h.handleOrderByID)))
	mux.Handle("/v1/invoices", mw.RequireAuth(http.HandlerFunc(h.handleInvoices)))
	mux.Handle("/v1/payments", mw.RequireAuth(http.HandlerFunc(h.handlePayments)))
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.placeOrder(w, r)
	case http.MethodGet:
		h.listOrders(w, r)
	default:
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/orders/"), "/")
	if id == "" {
		httpapi.WriteError(w, http.StatusNotFound, "order not found")
		return
	}

	if r.Method != http.MethodGet {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	identity, _ := auth.IdentityFrom(r.Context())
	order, err := h.service.GetOrder(r.Context(), identity, id)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := auth.IdentityFrom(ctx)

	// The key is scoped per user so two callers reusing the same key
	// never see each other's responses.
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey != "" {
		idemKey = identity.UserID + ":" + idemKey

		stored, err := h.service.GetIdempotentResponse(ctx, idemKey)
		if err != nil {
			httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if stored != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	var payload app.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	invoice, err := h.service.PlaceOrder(ctx, identity, payload)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	response := map[string]any{"invoice": invoice}
	body, err := json.Marshal(response)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if idemKey != "" {
		stored := ports.StoredResponse{
			StatusCode: http.StatusCreated,
			Body:       body,
			OrderID:    invoice.Order.ID,
		}
		if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
			httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	page, pageSize := pagination(r)

	orders, err := h.service.ListOrders(r.Context(), identity, page, pageSize)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	identity, _ := auth.IdentityFrom(r.Context())
	page, pageSize := pagination(r)

	invoices, err := h.service.ListInvoices(r.Context(), identity, page, pageSize)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.submitPayment(w, r)
	case http.MethodGet:
		h.listPayments(w, r)
	default:
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) submitPayment(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	var payload app.SubmitPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	payment, err := h.service.SubmitPayment(r.Context(), identity, payload)
	if err != nil {
		httpapi.WriteAppError(w, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"payment": payment})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	page, pageSize := pagination(r)

	payments, err := h.service.ListPayments(r.Context(), identity, page, pageSize)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

func pagination(r *http.Request) (page, pageSize int) {
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if parsed, err := strconv.Atoi(pageParam); err == nil {
			page = parsed
		}
	}
	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if parsed, err := strconv.Atoi(pageSizeParam); err == nil {
			pageSize = parsed
		}
	}
	return page, pageSize
}
