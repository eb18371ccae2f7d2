package registry

import (
	"context"

	"github.com/google/uuid"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
type VehicleRepository interface {
	// FindByID retrieves a vehicle by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// FindByPlate retrieves a vehicle by its normalized registration number.
	FindByPlate(ctx context.Context, plate string) (*Vehicle, error)

	// List retrieves registered vehicles with pagination.
	List(ctx context.Context, page, limit int) ([]*Vehicle, int64, error)

	// CountByCategory returns vehicle counts grouped by category.
	CountByCategory(ctx context.Context) (map[string]int64, error)

	// Save persists a new vehicle.
	Save(ctx context.Context, vehicle *Vehicle) error

	// Update persists changes to an existing vehicle with optimistic locking.
	Update(ctx context.Context, vehicle *Vehicle) error
}
