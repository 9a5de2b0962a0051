package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"price-catalog/internal/models"
	"price-catalog/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventPublisher handles publishing catalog domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishProductRegistered publishes a ProductRegistered event
func (ep *EventPublisher) PublishProductRegistered(ctx context.Context, event *models.ProductRegisteredEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("product-%s", event.Barcode), event)
}

// PublishPriceUpdated publishes a PriceUpdated event
func (ep *EventPublisher) PublishPriceUpdated(ctx context.Context, event *models.PriceUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("product-%s", event.Barcode), event)
}

// EventHandler routes incoming catalog events
type EventHandler struct {
	onProductRegistered func(context.Context, *models.ProductRegisteredEvent) error
	onPriceUpdated      func(context.Context, *models.PriceUpdatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnProductRegistered registers a handler for ProductRegistered events
func (eh *EventHandler) OnProductRegistered(handler func(context.Context, *models.ProductRegisteredEvent) error) {
	eh.onProductRegistered = handler
}

// OnPriceUpdated registers a handler for PriceUpdated events
func (eh *EventHandler) OnPriceUpdated(handler func(context.Context, *models.PriceUpdatedEvent) error) {
	eh.onPriceUpdated = handler
}

// HandleMessage routes messages to the appropriate handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeProductRegistered:
		if eh.onProductRegistered != nil {
			var event models.ProductRegisteredEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ProductRegistered event: %w", err)
			}
			return eh.onProductRegistered(ctx, &event)
		}

	case models.EventTypePriceUpdated:
		if eh.onPriceUpdated != nil {
			var event models.PriceUpdatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PriceUpdated event: %w", err)
			}
			return eh.onPriceUpdated(ctx, &event)
		}

	default:
		util.GetLogger().Debug("Unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
