package toll

import "fmt"

// Category is the tolling category of a vehicle.
type Category string

const (
	CategoryCar       Category = "car"
	CategoryMotorbike Category = "motorbike"
	CategoryTractor   Category = "tractor"
	CategoryEmergency Category = "emergency"
	CategoryDiplomat  Category = "diplomat"
	CategoryForeign   Category = "foreign"
	CategoryMilitary  Category = "military"
)

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCar, CategoryMotorbike, CategoryTractor, CategoryEmergency,
		CategoryDiplomat, CategoryForeign, CategoryMilitary:
		return true
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a string to a Category, returning an error if invalid.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid vehicle category: %s", s)
	}
	return c, nil
}

// Vehicle is the value the toll engine charges: a registration number and a
// tolling category. Exemption is a static property of the category.
type Vehicle struct {
	RegistrationNumber string
	Category           Category
}

// ExemptionPolicy decides whether a vehicle is permanently toll-free.
type ExemptionPolicy interface {
	IsExempt(vehicle Vehicle) bool
}

// CategoryExemptionPolicy exempts every category except ordinary cars.
type CategoryExemptionPolicy struct{}

// NewCategoryExemptionPolicy creates a new CategoryExemptionPolicy.
func NewCategoryExemptionPolicy() *CategoryExemptionPolicy {
	return &CategoryExemptionPolicy{}
}

// IsExempt reports whether the vehicle's category is toll-free.
func (p *CategoryExemptionPolicy) IsExempt(vehicle Vehicle) bool {
	switch vehicle.Category {
	case CategoryMotorbike, CategoryTractor, CategoryEmergency,
		CategoryDiplomat, CategoryForeign, CategoryMilitary:
		return true
	}
	return false
}
