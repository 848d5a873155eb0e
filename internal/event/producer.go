// Package event publishes storefront domain events. Publishing is
// best-effort from the caller's point of view: services log a failed
// publish and carry on, they never fail the user's request over it.
package event

import (
	"context"
	"log/slog"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/domain"
	pkgkafka "github.com/KilapathiMohanaRao/ReactProjectCart/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated    = "storefront.cart.updated"
	TopicCartCleared    = "storefront.cart.cleared"
	TopicOrderPlaced    = "storefront.order.placed"
	TopicReceiptSent    = "storefront.receipt.sent"
	TopicReceiptFailed  = "storefront.receipt.failed"
	TopicUserRegistered = "storefront.user.registered"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
	AggregateTypeUser  = "user"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// CartUpdatedData is the payload for a cart.updated event. Amounts are
// decimal strings.
type CartUpdatedData struct {
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
	Subtotal  string `json:"subtotal"`
	Currency  string `json:"currency"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	LineCount   int    `json:"line_count"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"currency"`
}

// ReceiptData is the payload for receipt.sent and receipt.failed events.
type ReceiptData struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Reason  string `json:"reason,omitempty"`
}

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Publisher is the event surface the services depend on.
type Publisher interface {
	CartUpdated(ctx context.Context, cart *domain.Cart)
	CartCleared(ctx context.Context, userID string)
	OrderPlaced(ctx context.Context, order *domain.Order)
	ReceiptSent(ctx context.Context, order *domain.Order, email string)
	ReceiptFailed(ctx context.Context, order *domain.Order, email, reason string)
	UserRegistered(ctx context.Context, user *domain.User)
}

// Producer publishes storefront events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates the Kafka-backed event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// CartUpdated publishes a cart.updated event.
func (p *Producer) CartUpdated(ctx context.Context, cart *domain.Cart) {
	p.publish(ctx, TopicCartUpdated, cart.UserID, AggregateTypeCart, CartUpdatedData{
		UserID:    cart.UserID,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal().String(),
		Currency:  cart.Currency,
	})
}

// CartCleared publishes a cart.cleared event.
func (p *Producer) CartCleared(ctx context.Context, userID string) {
	p.publish(ctx, TopicCartCleared, userID, AggregateTypeCart, CartClearedData{UserID: userID})
}

// OrderPlaced publishes an order.placed event.
func (p *Producer) OrderPlaced(ctx context.Context, order *domain.Order) {
	p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, OrderPlacedData{
		OrderID:     order.ID,
		UserID:      order.UserID,
		LineCount:   len(order.Lines),
		TotalAmount: order.TotalAmount.String(),
		Currency:    order.Currency,
	})
}

// ReceiptSent publishes a receipt.sent event.
func (p *Producer) ReceiptSent(ctx context.Context, order *domain.Order, email string) {
	p.publish(ctx, TopicReceiptSent, order.ID, AggregateTypeOrder, ReceiptData{
		OrderID: order.ID,
		UserID:  order.UserID,
		Email:   email,
	})
}

// ReceiptFailed publishes a receipt.failed event.
func (p *Producer) ReceiptFailed(ctx context.Context, order *domain.Order, email, reason string) {
	p.publish(ctx, TopicReceiptFailed, order.ID, AggregateTypeOrder, ReceiptData{
		OrderID: order.ID,
		UserID:  order.UserID,
		Email:   email,
		Reason:  reason,
	})
}

// UserRegistered publishes a user.registered event.
func (p *Producer) UserRegistered(ctx context.Context, user *domain.User) {
	p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, UserRegisteredData{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "create event",
			slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		p.logger.ErrorContext(ctx, "publish event",
			slog.String("topic", topic), slog.String("error", err.Error()))
	}
}
