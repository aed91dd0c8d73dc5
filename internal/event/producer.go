// Package event publishes storefront analytics events. Publishing is
// fire-and-forget from the request path's point of view: failures are
// logged, never surfaced to the customer.
package event

import (
	"context"
	"log/slog"

	"github.com/osamaqaseem39/stationary-gbs/internal/session"
	pkgkafka "github.com/osamaqaseem39/stationary-gbs/pkg/kafka"
	"github.com/osamaqaseem39/stationary-gbs/pkg/logger"
)

// Kafka topic constants for storefront analytics events.
const (
	TopicProductViewed   = "storefront.product.viewed"
	TopicSearchPerformed = "storefront.search.performed"
	TopicCartUpdated     = "storefront.cart.updated"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// ProductViewedData is the payload for a product.viewed event.
type ProductViewedData struct {
	ProductID string `json:"product_id"`
	Slug      string `json:"slug,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

// SearchPerformedData is the payload for a search.performed event.
type SearchPerformedData struct {
	Query   string `json:"query"`
	Results int    `json:"results"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID    string `json:"cart_id"`
	ItemCount int    `json:"item_count"`
}

// Producer publishes storefront analytics events to Kafka. A nil Producer
// is valid and publishes nothing, so event wiring stays optional.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an analytics event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// ProductViewed records a product detail view.
func (p *Producer) ProductViewed(ctx context.Context, productID, slug, brand string) {
	p.publish(ctx, TopicProductViewed, productID, "product", ProductViewedData{
		ProductID: productID,
		Slug:      slug,
		Brand:     brand,
	})
}

// SearchPerformed records a storefront search and its result count.
func (p *Producer) SearchPerformed(ctx context.Context, query string, results int) {
	p.publish(ctx, TopicSearchPerformed, query, "search", SearchPerformedData{
		Query:   query,
		Results: results,
	})
}

// CartUpdated records a cart mutation.
func (p *Producer) CartUpdated(ctx context.Context, cartID string, cart session.Cart) {
	p.publish(ctx, TopicCartUpdated, cartID, "cart", CartUpdatedData{
		CartID:    cartID,
		ItemCount: cart.ItemCount(),
	})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) {
	if p == nil || p.kafka == nil {
		return
	}

	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		p.logger.ErrorContext(ctx, "create analytics event failed",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
		return
	}

	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		event.WithCorrelationID(correlationID)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		p.logger.WarnContext(ctx, "analytics event publish failed",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
	}
}
