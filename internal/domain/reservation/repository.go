package reservation

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for Reservation aggregates.
type Repository interface {
	// FindByID retrieves a reservation by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// ListAll retrieves all reservations with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*Reservation, int64, error)

	// ListByStatus retrieves all reservations in the given status.
	ListByStatus(ctx context.Context, status Status) ([]*Reservation, error)

	// CountByStatus returns the number of reservations per status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new reservation aggregate.
	Save(ctx context.Context, r *Reservation) error

	// Update persists changes to an existing reservation with optimistic locking.
	Update(ctx context.Context, r *Reservation) error
}
