package events

import "time"

const CalculationSavedTopic = "tax.calculation.saved.v1"

const CalculationSavedEventType = "calculation_saved"

type CalculationSavedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	CalculationID   string    `json:"calculation_id"`
	UserID          string    `json:"user_id"`
	CalculationType string    `json:"calculation_type"`
	OccurredAt      time.Time `json:"occurred_at"`
}
