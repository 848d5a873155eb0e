package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/event"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/repository"
	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/sender"
)

// ReceiptService emails order receipts. One attempt per order; the terminal
// outcome is recorded on the ledger row and published as an event, and is
// never surfaced to the checkout caller.
type ReceiptService struct {
	sender  sender.Sender
	orders  repository.OrderRepository
	events  event.Publisher
	logger  *slog.Logger
	timeout time.Duration
}

// NewReceiptService creates a receipt service.
func NewReceiptService(
	snd sender.Sender,
	orders repository.OrderRepository,
	events event.Publisher,
	logger *slog.Logger,
	timeout time.Duration,
) *ReceiptService {
	return &ReceiptService{
		sender:  snd,
		orders:  orders,
		events:  events,
		logger:  logger,
		timeout: timeout,
	}
}

// Dispatch sends the receipt once and records the outcome. The returned
// error reflects the send result for callers that want it (the manual
// resend endpoint); checkout ignores it.
func (s *ReceiptService) Dispatch(ctx context.Context, order *domain.Order, identity *domain.Identity) error {
	receipt := sender.NewReceipt(order, identity)

	err := s.sender.Send(ctx, receipt)
	if err != nil {
		s.logger.ErrorContext(ctx, "receipt send failed",
			slog.String("order_id", order.ID),
			slog.String("sender", s.sender.Name()),
			slog.String("error", err.Error()),
		)
		s.mark(ctx, order, domain.OrderStatusReceiptError)
		s.events.ReceiptFailed(ctx, order, identity.Email, err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "receipt sent",
		slog.String("order_id", order.ID),
		slog.String("sender", s.sender.Name()),
		slog.String("to", identity.Email),
	)
	s.mark(ctx, order, domain.OrderStatusReceiptSent)
	s.events.ReceiptSent(ctx, order, identity.Email)
	return nil
}

// DispatchAsync runs Dispatch in the background. The request context's
// values survive for logging but its cancellation does not, so the send is
// not cut short when the checkout response goes out.
func (s *ReceiptService) DispatchAsync(ctx context.Context, order *domain.Order, identity *domain.Identity) {
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	go func() {
		defer cancel()
		_ = s.Dispatch(detached, order, identity)
	}()
}

func (s *ReceiptService) mark(ctx context.Context, order *domain.Order, status string) {
	if err := s.orders.MarkReceiptStatus(ctx, order.ID, status); err != nil {
		s.logger.ErrorContext(ctx, "mark receipt status",
			slog.String("order_id", order.ID),
			slog.String("status", status),
			slog.String("error", err.Error()),
		)
	}
}
