package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citytoll/service-tollfee/internal/domain/registry"
	"github.com/citytoll/service-tollfee/internal/domain/shared"
	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterVehicleRequest holds the data needed to register a vehicle.
type RegisterVehicleRequest struct {
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Category           string `json:"category" binding:"required"`
}

// VehicleDTO is the response representation of a registered vehicle.
type VehicleDTO struct {
	ID                 uuid.UUID `json:"id"`
	RegistrationNumber string    `json:"registration_number"`
	Category           string    `json:"category"`
	TollFree           bool      `json:"toll_free"`
	Version            int64     `json:"version"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VehicleStatsDTO holds registry statistics for the admin dashboard.
type VehicleStatsDTO struct {
	TotalVehicles int64            `json:"total_vehicles"`
	ByCategory    map[string]int64 `json:"by_category"`
}

// VehicleService is the application service for the vehicle registry.
type VehicleService struct {
	repo   registry.VehicleRepository
	logger *zap.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(repo registry.VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

// RegisterVehicle registers a new vehicle under the given category.
func (s *VehicleService) RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*VehicleDTO, error) {
	category, err := toll.ParseCategory(req.Category)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	vehicle, err := registry.NewVehicle(req.RegistrationNumber, category)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle registered",
		zap.String("registration_number", vehicle.RegistrationNumber()),
		zap.String("category", vehicle.Category().String()),
	)

	result := toVehicleDTO(vehicle)
	return &result, nil
}

// GetVehicleByPlate retrieves a vehicle by its registration number.
func (s *VehicleService) GetVehicleByPlate(ctx context.Context, plate string) (*VehicleDTO, error) {
	vehicle, err := s.repo.FindByPlate(ctx, registry.NormalizeRegistrationNumber(plate))
	if err != nil {
		return nil, err
	}
	result := toVehicleDTO(vehicle)
	return &result, nil
}

// ListVehicles returns a paginated list of registered vehicles.
func (s *VehicleService) ListVehicles(ctx context.Context, page, limit int) (*shared.PaginatedResult[VehicleDTO], error) {
	vehicles, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v)
	}

	result := shared.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetVehicleStats returns aggregate registry statistics (admin).
func (s *VehicleService) GetVehicleStats(ctx context.Context) (*VehicleStatsDTO, error) {
	counts, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &VehicleStatsDTO{
		TotalVehicles: total,
		ByCategory:    counts,
	}, nil
}

// SyncVehicle upserts a vehicle from an upstream registry event. A vehicle
// already known locally has its category reconciled; an unknown one is
// created.
func (s *VehicleService) SyncVehicle(ctx context.Context, registrationNumber string, category toll.Category) error {
	plate := registry.NormalizeRegistrationNumber(registrationNumber)

	existing, err := s.repo.FindByPlate(ctx, plate)
	switch {
	case err == nil:
		if existing.Category() == category {
			return nil
		}
		if err := existing.ChangeCategory(category); err != nil {
			return err
		}
		existing.IncrementVersion()
		return s.repo.Update(ctx, existing)
	case !isNotFound(err):
		return err
	}

	vehicle, err := registry.NewVehicle(plate, category)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, vehicle); err != nil {
		return err
	}

	s.logger.Info("vehicle synced from registry event",
		zap.String("registration_number", plate),
		zap.String("category", category.String()),
	)
	return nil
}

func isNotFound(err error) bool {
	var appErr *shared.AppError
	return errors.As(err, &appErr) && appErr.Kind == shared.KindNotFound
}

func toVehicleDTO(v *registry.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:                 v.ID(),
		RegistrationNumber: v.RegistrationNumber(),
		Category:           v.Category().String(),
		TollFree:           v.IsTollFree(),
		Version:            v.Version(),
		CreatedAt:          v.CreatedAt(),
		UpdatedAt:          v.UpdatedAt(),
	}
}
