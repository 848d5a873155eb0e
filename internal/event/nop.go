package event

import (
	"context"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
)

// NopPublisher discards all events. Used when Kafka is disabled and in
// tests that do not assert on events.
type NopPublisher struct{}

func (NopPublisher) CartUpdated(context.Context, *domain.Cart)                    {}
func (NopPublisher) CartCleared(context.Context, string)                          {}
func (NopPublisher) OrderPlaced(context.Context, *domain.Order)                   {}
func (NopPublisher) ReceiptSent(context.Context, *domain.Order, string)           {}
func (NopPublisher) ReceiptFailed(context.Context, *domain.Order, string, string) {}
func (NopPublisher) UserRegistered(context.Context, *domain.User)                 {}
