package events

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/shareit-market/shareit/pkg/kafka"
)

// Topic and event types for booking lifecycle events.
const (
	TopicBookingEvents = "booking.events"

	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

// BookingEvent is the payload published for every lifecycle transition.
type BookingEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	State      string    `json:"state"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Implementations must never
// fail the originating request: publishing is best-effort observability.
type Publisher interface {
	Publish(ctx context.Context, eventType string, event BookingEvent)
}

// KafkaPublisher publishes CloudEvent-wrapped booking events to Kafka.
type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
	logger   *zap.Logger
}

// NewKafkaPublisher creates a publisher writing to the booking topic.
func NewKafkaPublisher(producer *kafka.Producer, source string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source, logger: log}
}

// Publish wraps the event in a CloudEvent and writes it, logging failures
// instead of propagating them.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, event BookingEvent) {
	cloudEvent, err := kafka.NewCloudEvent(p.source, eventType, event)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	key := strconv.FormatInt(event.BookingID, 10)
	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, key, cloudEvent); err != nil {
		p.logger.Error("failed to publish booking event",
			zap.String("event_type", eventType),
			zap.Int64("booking_id", event.BookingID),
			zap.Error(err),
		)
	}
}

// NopPublisher discards events; used when Kafka is not configured.
type NopPublisher struct{}

// Publish implements Publisher by doing nothing.
func (NopPublisher) Publish(context.Context, string, BookingEvent) {}
