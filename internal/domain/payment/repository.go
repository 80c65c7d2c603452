package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for Payment records.
type Repository interface {
	// FindByReservationID retrieves the payment recorded for a reservation.
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*Payment, error)

	// ListAll retrieves all payments with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Payment, int64, error)

	// GetRevenueStats returns total settled revenue and payment counts per provider (admin).
	GetRevenueStats(ctx context.Context) (totalRevenue float64, countByProvider map[string]int64, err error)

	// Save persists a new payment record.
	Save(ctx context.Context, p *Payment) error
}
