package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// --- ListOrders ---

func TestListOrders_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	svc := NewOrderService(orders, newTestLogger())
	ctx := context.Background()

	stored := []domain.Order{*receiptOrder(), *receiptOrder()}
	orders.On("ListByUser", ctx, "user-1").Return(stored, nil)

	got, err := svc.ListOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListOrders_EmptyLedger(t *testing.T) {
	orders := new(mockOrderRepository)
	svc := NewOrderService(orders, newTestLogger())
	ctx := context.Background()

	orders.On("ListByUser", ctx, "user-1").Return([]domain.Order{}, nil)

	got, err := svc.ListOrders(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListOrders_MissingUserID(t *testing.T) {
	svc := NewOrderService(new(mockOrderRepository), newTestLogger())

	_, err := svc.ListOrders(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

// --- GetOrder ---

func TestGetOrder_NotFound(t *testing.T) {
	orders := new(mockOrderRepository)
	svc := NewOrderService(orders, newTestLogger())
	ctx := context.Background()

	orders.On("GetByID", ctx, "user-1", "order-x").Return(nil, apperrors.NotFound("order", "order-x"))

	_, err := svc.GetOrder(ctx, "user-1", "order-x")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
