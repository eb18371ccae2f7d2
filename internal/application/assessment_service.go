package application

import (
	"context"
	"errors"
	"time"

	"github.com/citytoll/service-tollfee/internal/domain/registry"
	"github.com/citytoll/service-tollfee/internal/domain/shared"
	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"go.uber.org/zap"
)

// AssessDayRequest holds one day of passages for a single vehicle.
type AssessDayRequest struct {
	RegistrationNumber string      `json:"registration_number" binding:"required"`
	Passages           []time.Time `json:"passages" binding:"required"`
}

// AssessmentDTO is the result of assessing one day of passages.
type AssessmentDTO struct {
	RegistrationNumber string    `json:"registration_number"`
	Category           string    `json:"category"`
	Date               string    `json:"date"`
	TotalFee           int       `json:"total_fee"`
	Currency           string    `json:"currency"`
	VehicleExempt      bool      `json:"vehicle_exempt"`
	PassageCount       int       `json:"passage_count"`
	ChargeGroups       int       `json:"charge_groups"`
	AssessedAt         time.Time `json:"assessed_at"`
}

// EventPublisher publishes assessment results for downstream consumers.
// Implementations must not block the request path on broker failures.
type EventPublisher interface {
	DayAssessed(ctx context.Context, assessment AssessmentDTO)
}

// AssessmentService computes daily toll fees for registered vehicles.
type AssessmentService struct {
	vehicles   registry.VehicleRepository
	calculator *toll.Calculator
	publisher  EventPublisher
	logger     *zap.Logger
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(
	vehicles registry.VehicleRepository,
	calculator *toll.Calculator,
	publisher EventPublisher,
	logger *zap.Logger,
) *AssessmentService {
	return &AssessmentService{
		vehicles:   vehicles,
		calculator: calculator,
		publisher:  publisher,
		logger:     logger,
	}
}

// AssessDay computes the total toll fee for one vehicle's passages on one
// day, and publishes the result.
func (s *AssessmentService) AssessDay(ctx context.Context, req AssessDayRequest) (*AssessmentDTO, error) {
	if len(req.Passages) == 0 {
		return nil, shared.NewValidationError("at least one passage timestamp is required")
	}

	vehicle, err := s.vehicles.FindByPlate(ctx, registry.NormalizeRegistrationNumber(req.RegistrationNumber))
	if err != nil {
		return nil, err
	}

	result, err := s.calculator.Assess(vehicle.TollVehicle(), req.Passages)
	if err != nil {
		if errors.Is(err, toll.ErrNoPassages) || errors.Is(err, toll.ErrUnknownVehicle) {
			return nil, shared.NewValidationError(err.Error())
		}
		return nil, err
	}

	dto := AssessmentDTO{
		RegistrationNumber: vehicle.RegistrationNumber(),
		Category:           vehicle.Category().String(),
		Date:               earliest(req.Passages).Format("2006-01-02"),
		TotalFee:           result.TotalFee,
		Currency:           shared.CurrencySEK,
		VehicleExempt:      result.VehicleExempt,
		PassageCount:       len(req.Passages),
		ChargeGroups:       result.ChargeGroups,
		AssessedAt:         time.Now().UTC(),
	}

	s.logger.Info("day assessed",
		zap.String("registration_number", dto.RegistrationNumber),
		zap.String("date", dto.Date),
		zap.Int("total_fee", dto.TotalFee),
		zap.Int("charge_groups", dto.ChargeGroups),
	)

	s.publisher.DayAssessed(ctx, dto)

	return &dto, nil
}

// earliest returns the earliest timestamp; the input list may be unordered.
func earliest(passages []time.Time) time.Time {
	min := passages[0]
	for _, p := range passages[1:] {
		if p.Before(min) {
			min = p
		}
	}
	return min
}
