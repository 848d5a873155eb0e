package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/service"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. The cart owner comes
// from the Identify middleware: the user ID when logged in, a session-keyed
// guest handle otherwise.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a catalog product.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ApplyCouponRequest is the JSON request body for applying a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// SetDiscountRequest is the JSON request body for the manual discount.
type SetDiscountRequest struct {
	Percent int `json:"percent" validate:"gte=0,lte=30"`
}

// ApplyCouponResponse pairs the validation outcome with the refreshed cart.
type ApplyCouponResponse struct {
	Coupon domain.CouponResult `json:"coupon"`
	Cart   *service.CartView   `json:"cart"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetCart(r.Context(), owner)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	view, err := h.service.AddItem(r.Context(), owner, req.ProductID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// IncreaseItem handles POST /api/v1/cart/items/{productID}/increase
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.IncreaseItem)
}

// DecreaseItem handles POST /api/v1/cart/items/{productID}/decrease. A line
// at quantity 1 answers 409 MINIMUM_QUANTITY and stays unchanged.
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.DecreaseItem)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutateLine(w, r, h.service.RemoveItem)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	view, err := h.service.ClearCart(r.Context(), owner)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// ApplyCoupon handles POST /api/v1/cart/coupon. An unknown code is a 200
// with is_valid false, never an error status.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req ApplyCouponRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	view, result, err := h.service.ApplyCoupon(r.Context(), owner, req.Code)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: ApplyCouponResponse{Coupon: result, Cart: view}})
}

// SetDiscount handles PUT /api/v1/cart/discount
func (h *CartHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req SetDiscountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	view, err := h.service.SetManualDiscount(r.Context(), owner, req.Percent)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// ResetDiscounts handles DELETE /api/v1/cart/discounts
func (h *CartHandler) ResetDiscounts(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	view, err := h.service.ResetDiscounts(r.Context(), owner)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// --- Helpers ---

func (h *CartHandler) mutateLine(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, owner, productID string) (*service.CartView, error),
) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID is required"},
		})
		return
	}

	view, err := op(r.Context(), owner, productID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: view})
}

// owner resolves the cart owner key from the request context. A request
// with neither a token nor a session header has no cart to act on.
func (h *CartHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := CartOwnerFromContext(r.Context())
	if owner == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "an Authorization token or X-Session-ID header is required"},
		})
		return "", false
	}
	return owner, true
}
