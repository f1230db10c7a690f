package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/utafrali/brandcatalog/internal/domain"
	pkgkafka "github.com/utafrali/brandcatalog/pkg/kafka"
	"github.com/utafrali/brandcatalog/pkg/logger"
)

// Event types for brand domain events.
const (
	EventBrandCreated = "brand.created"
	EventBrandUpdated = "brand.updated"
	EventBrandDeleted = "brand.deleted"
)

// Kafka topics for brand domain events.
var (
	TopicBrandCreated = pkgkafka.Topic("brand", "created")
	TopicBrandUpdated = pkgkafka.Topic("brand", "updated")
	TopicBrandDeleted = pkgkafka.Topic("brand", "deleted")
)

// Aggregate type constant.
const AggregateTypeBrand = "brand"

// Source identifier for events originating from this service.
const SourceBrandService = "brand-service"

// BrandData is the payload for brand.created and brand.updated events.
type BrandData struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BrandDeletedData is the payload for a brand.deleted event.
type BrandDeletedData struct {
	ID int64 `json:"id"`
}

// Publisher is the part of *pkgkafka.Producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes brand domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer for the brand service.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishBrandCreated publishes a brand.created event.
func (p *Producer) PublishBrandCreated(ctx context.Context, brand *domain.Brand) error {
	return p.publish(ctx, TopicBrandCreated, EventBrandCreated, brand.ID, brandData(brand))
}

// PublishBrandUpdated publishes a brand.updated event.
func (p *Producer) PublishBrandUpdated(ctx context.Context, brand *domain.Brand) error {
	return p.publish(ctx, TopicBrandUpdated, EventBrandUpdated, brand.ID, brandData(brand))
}

// PublishBrandDeleted publishes a brand.deleted event.
func (p *Producer) PublishBrandDeleted(ctx context.Context, id int64) error {
	return p.publish(ctx, TopicBrandDeleted, EventBrandDeleted, id, BrandDeletedData{ID: id})
}

func (p *Producer) publish(ctx context.Context, topic, eventType string, id int64, data any) error {
	event, err := pkgkafka.NewEvent(eventType, strconv.FormatInt(id, 10), AggregateTypeBrand, SourceBrandService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		event.WithCorrelationID(cid)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published "+eventType+" event",
		slog.Int64("brand_id", id),
	)

	return nil
}

func brandData(b *domain.Brand) BrandData {
	return BrandData{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// NoopPublisher drops every event. It is used when event publishing is
// disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishBrandCreated(context.Context, *domain.Brand) error { return nil }
func (NoopPublisher) PublishBrandUpdated(context.Context, *domain.Brand) error { return nil }
func (NoopPublisher) PublishBrandDeleted(context.Context, int64) error         { return nil }
