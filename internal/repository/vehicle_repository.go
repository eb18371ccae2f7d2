package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citytoll/service-tollfee/internal/domain/registry"
	"github.com/citytoll/service-tollfee/internal/domain/shared"
	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleModel is the GORM model for the vehicles table.
type VehicleModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegistrationNumber string    `gorm:"uniqueIndex;not null;size:20"`
	Category           string    `gorm:"not null;size:20;index"`
	Version            int64     `gorm:"not null;default:1"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// GormVehicleRepository is the GORM-based implementation of VehicleRepository.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle by its unique identifier.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Vehicle", id.String())
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// FindByPlate retrieves a vehicle by its normalized registration number.
func (r *GormVehicleRepository) FindByPlate(ctx context.Context, plate string) (*registry.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("registration_number = ?", plate).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Vehicle", plate)
		}
		return nil, fmt.Errorf("failed to find vehicle by plate: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// List retrieves registered vehicles with pagination.
func (r *GormVehicleRepository) List(ctx context.Context, page, limit int) ([]*registry.Vehicle, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&VehicleModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	var models []VehicleModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("registration_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]*registry.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = toDomainVehicle(&m)
	}

	return vehicles, total, nil
}

// CountByCategory returns vehicle counts grouped by category.
func (r *GormVehicleRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count vehicles by category: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

// Save persists a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *registry.Vehicle) error {
	model := toVehicleModel(vehicle)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("vehicle already registered: " + vehicle.RegistrationNumber())
		}
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

// Update persists changes to an existing vehicle with optimistic locking.
func (r *GormVehicleRepository) Update(ctx context.Context, vehicle *registry.Vehicle) error {
	model := toVehicleModel(vehicle)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before persisting).
	expectedVersion := vehicle.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"category":   model.Category,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError("vehicle was modified by another transaction")
	}
	return nil
}

// --- Mapping ---

func toVehicleModel(v *registry.Vehicle) *VehicleModel {
	return &VehicleModel{
		ID:                 v.ID(),
		RegistrationNumber: v.RegistrationNumber(),
		Category:           v.Category().String(),
		Version:            v.Version(),
		CreatedAt:          v.CreatedAt(),
		UpdatedAt:          v.UpdatedAt(),
	}
}

func toDomainVehicle(m *VehicleModel) *registry.Vehicle {
	return registry.ReconstructVehicle(
		m.ID,
		m.RegistrationNumber,
		toll.Category(m.Category),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
