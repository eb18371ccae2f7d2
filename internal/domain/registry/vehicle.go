package registry

import (
	"strings"
	"time"

	"github.com/citytoll/service-tollfee/internal/domain/shared"
	"github.com/citytoll/service-tollfee/internal/domain/toll"
	"github.com/google/uuid"
)

// Vehicle is the aggregate root for the vehicle registry: a registered
// vehicle with the tolling category its fees are assessed under.
type Vehicle struct {
	id                 uuid.UUID
	registrationNumber string
	category           toll.Category

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NormalizeRegistrationNumber canonicalizes a plate: spaces and dashes
// removed, all characters uppercased.
func NormalizeRegistrationNumber(value string) string {
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "-", "")
	return strings.ToUpper(value)
}

// NewVehicle creates a new Vehicle aggregate.
func NewVehicle(registrationNumber string, category toll.Category) (*Vehicle, error) {
	plate := NormalizeRegistrationNumber(registrationNumber)
	if plate == "" {
		return nil, shared.NewValidationError("registration number is required")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("invalid vehicle category: " + category.String())
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:                 uuid.New(),
		registrationNumber: plate,
		category:           category,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructVehicle rebuilds a Vehicle from persistence data (no validation).
func ReconstructVehicle(
	id uuid.UUID,
	registrationNumber string,
	category toll.Category,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:                 id,
		registrationNumber: registrationNumber,
		category:           category,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() uuid.UUID { return v.id }

// RegistrationNumber returns the normalized plate.
func (v *Vehicle) RegistrationNumber() string { return v.registrationNumber }

// Category returns the tolling category.
func (v *Vehicle) Category() toll.Category { return v.category }

// Version returns the entity version for optimistic locking.
func (v *Vehicle) Version() int64 { return v.version }

// CreatedAt returns the creation timestamp.
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// IsTollFree reports whether the vehicle's category is permanently exempt
// from charging.
func (v *Vehicle) IsTollFree() bool {
	return v.category != toll.CategoryCar
}

// TollVehicle returns the value the toll engine charges.
func (v *Vehicle) TollVehicle() toll.Vehicle {
	return toll.Vehicle{
		RegistrationNumber: v.registrationNumber,
		Category:           v.category,
	}
}

// ChangeCategory reclassifies the vehicle.
func (v *Vehicle) ChangeCategory(category toll.Category) error {
	if !category.IsValid() {
		return shared.NewValidationError("invalid vehicle category: " + category.String())
	}
	v.category = category
	v.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (v *Vehicle) IncrementVersion() {
	v.version++
	v.updatedAt = time.Now().UTC()
}
