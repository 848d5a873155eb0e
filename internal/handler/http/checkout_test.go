package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// ============================================================================
// POST /api/v1/checkout
// ============================================================================

func TestPlaceOrder_EmptyCartBeforeLoginDemand(t *testing.T) {
	f := newFixtures(t)
	// A guest with no cart is told about the cart, not about logging in.
	f.carts.On("Get", mock.Anything, "guest:sess-42").Return(nil, apperrors.NotFound("cart", "guest:sess-42"))

	rec := f.do(cartRequest(http.MethodPost, "/api/v1/checkout", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)
}

func TestPlaceOrder_GuestWithItemsNeedsLogin(t *testing.T) {
	f := newFixtures(t)
	f.carts.On("Get", mock.Anything, "guest:sess-42").Return(cartWith("guest:sess-42", tomatoLine(2)), nil)

	rec := f.do(cartRequest(http.MethodPost, "/api/v1/checkout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "AUTH_REQUIRED", resp.Error.Code)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixtures(t)
	f.carts.On("Get", mock.Anything, "user-1").Return(cartWith("user-1", tomatoLine(2)), nil)
	f.carts.On("Delete", mock.Anything, "user-1").Return(nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	f.dispatcher.On("DispatchAsync", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("*domain.Identity")).Return()

	req := cartRequest(http.MethodPost, "/api/v1/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t))
	rec := f.do(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)

	raw, _ := json.Marshal(resp.Data)
	var order domain.Order
	require.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	// 80 subtotal + 18% tax
	assert.Equal(t, "94.40", order.TotalAmount.StringFixed(2))

	f.carts.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
}

func TestPlaceOrder_LedgerFailureKeepsCart(t *testing.T) {
	f := newFixtures(t)
	f.carts.On("Get", mock.Anything, "user-1").Return(cartWith("user-1", tomatoLine(2)), nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(apperrors.Internal(assert.AnError))

	req := cartRequest(http.MethodPost, "/api/v1/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t))
	rec := f.do(req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	f.carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "DispatchAsync", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// GET /api/v1/checkout/payment-reference
// ============================================================================

func TestPaymentReference_RendersUPILink(t *testing.T) {
	f := newFixtures(t)
	f.carts.On("Get", mock.Anything, "guest:sess-42").Return(cartWith("guest:sess-42", tomatoLine(2)), nil)

	rec := f.do(cartRequest(http.MethodGet, "/api/v1/checkout/payment-reference", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	raw, _ := json.Marshal(decodeResponse(t, rec).Data)
	var data map[string]string
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Contains(t, data["payment_reference"], "upi://pay?pa=9949237674-2%40ybl")
	assert.Contains(t, data["payment_reference"], "am=94.40")
	assert.Contains(t, data["payment_reference"], "cu=INR")
}

func TestPaymentReference_EmptyCart(t *testing.T) {
	f := newFixtures(t)
	f.carts.On("Get", mock.Anything, "guest:sess-42").Return(nil, apperrors.NotFound("cart", "guest:sess-42"))

	rec := f.do(cartRequest(http.MethodGet, "/api/v1/checkout/payment-reference", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_CART", decodeResponse(t, rec).Error.Code)
}

// ============================================================================
// POST /api/v1/receipt
// ============================================================================

func TestResendReceipt_Accepted(t *testing.T) {
	f := newFixtures(t)

	order := domain.NewOrder("user-1", cartWith("user-1", tomatoLine(2)), domain.Price(decimal.NewFromInt(80), "", 0, 0))
	f.orders.On("GetByID", mock.Anything, "user-1", order.ID).Return(order, nil)
	f.dispatcher.On("DispatchAsync", mock.Anything, order, mock.AnythingOfType("*domain.Identity")).Return()

	body, _ := json.Marshal(ResendReceiptRequest{OrderID: order.ID})
	req := cartRequest(http.MethodPost, "/api/v1/receipt", body)
	req.Header.Set("Authorization", "Bearer "+f.token(t))
	rec := f.do(req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	f.dispatcher.AssertExpectations(t)
}

func TestResendReceipt_RequiresAuth(t *testing.T) {
	f := newFixtures(t)

	body, _ := json.Marshal(ResendReceiptRequest{OrderID: "order-1"})
	rec := f.do(cartRequest(http.MethodPost, "/api/v1/receipt", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResendReceipt_UnknownOrder(t *testing.T) {
	f := newFixtures(t)
	f.orders.On("GetByID", mock.Anything, "user-1", "order-x").Return(nil, apperrors.NotFound("order", "order-x"))

	body, _ := json.Marshal(ResendReceiptRequest{OrderID: "order-x"})
	req := cartRequest(http.MethodPost, "/api/v1/receipt", body)
	req.Header.Set("Authorization", "Bearer "+f.token(t))
	rec := f.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	f.dispatcher.AssertNotCalled(t, "DispatchAsync", mock.Anything, mock.Anything, mock.Anything)
}
