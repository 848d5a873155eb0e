package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository"
	apperrors "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/errors"
)

// OrderService reads the per-user order ledger.
type OrderService struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(orders repository.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// ListOrders returns the user's orders, newest first. A user with no
// orders gets an empty list.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one of the user's orders.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}
