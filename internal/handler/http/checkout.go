package http

import (
	"log/slog"
	"net/http"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/service"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints. Checkout
// itself is reachable without a token so the empty-cart answer comes before
// the login demand, matching the storefront's flow.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	orders   *service.OrderService
	receipts service.ReceiptDispatcher
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(
	checkout *service.CheckoutService,
	orders *service.OrderService,
	receipts service.ReceiptDispatcher,
	logger *slog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		orders:   orders,
		receipts: receipts,
		logger:   logger,
	}
}

// ResendReceiptRequest is the JSON request body for a manual receipt resend.
type ResendReceiptRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.checkout.PlaceOrder(ctx, CartOwnerFromContext(ctx), IdentityFromContext(ctx))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, response{Data: order})
}

// PaymentReference handles GET /api/v1/checkout/payment-reference
func (h *CheckoutHandler) PaymentReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner := CartOwnerFromContext(ctx)
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "an Authorization token or X-Session-ID header is required"},
		})
		return
	}

	reference, err := h.checkout.PaymentReference(ctx, owner)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"payment_reference": reference}})
}

// ResendReceipt handles POST /api/v1/receipt. The send runs in the
// background; the caller gets a 202 as soon as the order is found.
func (h *CheckoutHandler) ResendReceipt(w http.ResponseWriter, r *http.Request) {
	var req ResendReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	ctx := r.Context()
	identity := IdentityFromContext(ctx)

	order, err := h.orders.GetOrder(ctx, identity.UserID, req.OrderID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.receipts.DispatchAsync(ctx, order, identity)
	writeJSON(w, http.StatusAccepted, response{Data: map[string]string{"status": "dispatching"}})
}
