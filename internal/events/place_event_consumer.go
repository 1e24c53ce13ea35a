package events

import (
	"context"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/spotlog/service-planner/internal/application"
	"github.com/spotlog/service-planner/internal/domain/place"
	"github.com/spotlog/service-planner/internal/platform/kafka"
	"github.com/spotlog/service-planner/internal/proto/events"
)

// PlaceAdder is the part of the planner the consumer drives.
type PlaceAdder interface {
	AddPlace(ctx context.Context, p place.Place) (*application.PlaceDTO, bool, error)
}

// PlaceEventConsumer listens to place events and appends newly saved places.
type PlaceEventConsumer struct {
	consumer *kafka.Consumer
	service  PlaceAdder
	logger   *zap.Logger
}

// NewPlaceEventConsumer creates a new PlaceEventConsumer.
func NewPlaceEventConsumer(
	brokers []string,
	groupID string,
	service PlaceAdder,
	logger *zap.Logger,
) *PlaceEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicPlaceEvents, logger)
	return &PlaceEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming place events. This blocks until the context is cancelled.
func (c *PlaceEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PlaceEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PlaceEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from place topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.PlaceSaved:
		return c.handlePlaceSaved(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled place event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PlaceEventConsumer) handlePlaceSaved(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.PlaceSavedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PlaceSavedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	p := place.Normalize(evt.Place)
	if p.GooglePlaceID == "" {
		p.GooglePlaceID = strings.TrimSpace(evt.GooglePlaceID)
	}
	if p.Key() == "" {
		p.ID = p.GooglePlaceID
	}
	if p.Key() == "" {
		c.logger.Warn("place saved event has no identifiable place",
			zap.String("event_id", cloudEvent.ID),
		)
		return nil
	}

	c.logger.Info("processing place saved event",
		zap.String("place_key", p.Key()),
		zap.String("google_place_id", p.GooglePlaceID),
	)

	_, added, err := c.service.AddPlace(ctx, p)
	if err != nil {
		c.logger.Error("failed to add saved place",
			zap.String("place_key", p.Key()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("saved place merged",
		zap.String("place_key", p.Key()),
		zap.Bool("added", added),
	)
	return nil
}
