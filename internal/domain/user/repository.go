package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for User aggregates.
type Repository interface {
	// FindByID retrieves a user by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error
}
