package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/service"
)

// OrderHandler handles HTTP requests for the order ledger.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	orders, err := h.service.ListOrders(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: orders})
}

// Get handles GET /api/v1/orders/{orderID}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	orderID := chi.URLParam(r, "orderID")

	order, err := h.service.GetOrder(r.Context(), identity.UserID, orderID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: order})
}
