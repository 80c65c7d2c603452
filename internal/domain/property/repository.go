package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for Property aggregates.
type Repository interface {
	// FindByID retrieves a property by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// ListAll retrieves all property listings.
	ListAll(ctx context.Context) ([]*Property, error)

	// Save persists a new property.
	Save(ctx context.Context, p *Property) error
}
