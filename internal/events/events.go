package events

import "time"

// Topics this service produces to and consumes from.
const (
	TopicTollEvents     = "toll.events"
	TopicRegistryEvents = "registry.events"
)

// Event types.
const (
	TollDayAssessed   = "toll.day_assessed"
	VehicleRegistered = "registry.vehicle_registered"
)

// EventSource identifies this service in published CloudEvents.
const EventSource = "service-tollfee"

// TollDayAssessedEvent is published after each daily fee assessment.
type TollDayAssessedEvent struct {
	RegistrationNumber string    `json:"registration_number"`
	Category           string    `json:"category"`
	Date               string    `json:"date"`
	TotalFee           int       `json:"total_fee"`
	Currency           string    `json:"currency"`
	VehicleExempt      bool      `json:"vehicle_exempt"`
	PassageCount       int       `json:"passage_count"`
	ChargeGroups       int       `json:"charge_groups"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// VehicleRegisteredEvent is consumed from the upstream vehicle registry.
type VehicleRegisteredEvent struct {
	RegistrationNumber string    `json:"registration_number"`
	Category           string    `json:"category"`
	OccurredAt         time.Time `json:"occurred_at"`
}
