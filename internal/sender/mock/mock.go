package mock

import (
	"context"
	"log/slog"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/sender"
)

// Sender logs receipts instead of sending them. Used in development and
// when no email API is configured.
type Sender struct {
	logger *slog.Logger
}

// New creates a mock sender.
func New(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

// Name returns the name of this sender.
func (s *Sender) Name() string {
	return "mock"
}

// Send logs the receipt and succeeds.
func (s *Sender) Send(ctx context.Context, receipt sender.Receipt) error {
	s.logger.InfoContext(ctx, "mock sender: receipt sent",
		slog.String("order_id", receipt.OrderID),
		slog.String("to", receipt.ToEmail),
		slog.String("total", receipt.Total),
		slog.Int("lines", len(receipt.Lines)),
	)
	return nil
}
