package events

import (
	"context"
	"encoding/json"

	"github.com/citytoll/service-tollfee/internal/application"
	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"github.com/citytoll/service-tollfee/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RegistryEventConsumer projects upstream vehicle-registry events into the
// local vehicle table so assessments never need a synchronous lookup against
// the registry service.
type RegistryEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.VehicleService
	logger   *zap.Logger
}

// NewRegistryEventConsumer creates a new RegistryEventConsumer.
func NewRegistryEventConsumer(
	brokers []string,
	groupID string,
	service *application.VehicleService,
	logger *zap.Logger,
) *RegistryEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicRegistryEvents, logger)
	return &RegistryEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming registry events. This blocks until the context is
// cancelled.
func (c *RegistryEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *RegistryEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *RegistryEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from registry topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case VehicleRegistered:
		return c.handleVehicleRegistered(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled registry event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *RegistryEventConsumer) handleVehicleRegistered(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt VehicleRegisteredEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse VehicleRegisteredEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	category, err := toll.ParseCategory(evt.Category)
	if err != nil {
		c.logger.Warn("registry event with unknown category, skipping",
			zap.String("registration_number", evt.RegistrationNumber),
			zap.String("category", evt.Category),
		)
		return nil
	}

	if err := c.service.SyncVehicle(ctx, evt.RegistrationNumber, category); err != nil {
		c.logger.Error("failed to sync vehicle from registry event",
			zap.String("registration_number", evt.RegistrationNumber),
			zap.Error(err),
		)
		return err
	}

	return nil
}
