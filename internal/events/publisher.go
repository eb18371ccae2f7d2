package events

import (
	"context"

	"github.com/citytoll/service-tollfee/internal/application"
	"github.com/citytoll/service-tollfee/internal/kafka"
	"go.uber.org/zap"
)

// TollEventPublisher publishes assessment results to the toll events topic.
// It implements application.EventPublisher.
type TollEventPublisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewTollEventPublisher creates a new TollEventPublisher.
func NewTollEventPublisher(producer *kafka.Producer, logger *zap.Logger) *TollEventPublisher {
	return &TollEventPublisher{producer: producer, logger: logger}
}

// DayAssessed publishes a TollDayAssessedEvent. Publish failures are logged
// and swallowed: the assessment result has already been computed and must
// still reach the caller.
func (p *TollEventPublisher) DayAssessed(ctx context.Context, assessment application.AssessmentDTO) {
	evt := TollDayAssessedEvent{
		RegistrationNumber: assessment.RegistrationNumber,
		Category:           assessment.Category,
		Date:               assessment.Date,
		TotalFee:           assessment.TotalFee,
		Currency:           assessment.Currency,
		VehicleExempt:      assessment.VehicleExempt,
		PassageCount:       assessment.PassageCount,
		ChargeGroups:       assessment.ChargeGroups,
		OccurredAt:         assessment.AssessedAt,
	}

	cloudEvent, err := kafka.NewCloudEvent(EventSource, TollDayAssessed, evt)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", TollDayAssessed),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicTollEvents, evt.RegistrationNumber, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicTollEvents),
			zap.String("event_type", TollDayAssessed),
			zap.Error(err),
		)
	}
}
