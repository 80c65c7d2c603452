// Package events defines the topics and payloads published by the
// reservation service.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicReservationEvents = "reservation.events"
	TopicPaymentEvents     = "payment.events"
)

// Event types.
const (
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	PaymentProcessed         = "payment.processed"
	PaymentFailed            = "payment.failed"
)

// ReservationCreatedEvent is published when a new reservation is built and stored.
type ReservationCreatedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	PropertyID    uuid.UUID `json:"property_id"`
	GuestID       uuid.UUID `json:"guest_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	TotalAmount   float64   `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReservationStatusChangedEvent is published when a lifecycle transition mutates
// a reservation's status. Rejected transitions do not produce events.
type ReservationStatusChangedEvent struct {
	ReservationID  uuid.UUID `json:"reservation_id"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previous_status"`
	CurrentStatus  string    `json:"current_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PaymentProcessedEvent is published when a provider settles a payment.
type PaymentProcessedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Provider      string    `json:"provider"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentFailedEvent is published when a provider reports a failed settlement.
type PaymentFailedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Provider      string    `json:"provider"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}
