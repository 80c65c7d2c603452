package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/morada-homes/service-reservation/internal/domain"
)

// Roles a user can hold.
const (
	RoleGuest = "guest"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User is the aggregate root for guests, property owners and admins.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	phone        string
	role         string
	passwordHash string
	createdAt    time.Time
}

// NewUser registers a user with a bcrypt-hashed password.
func NewUser(name, email, phone, role, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if role != RoleGuest && role != RoleOwner && role != RoleAdmin {
		return nil, domain.NewValidationError("role must be guest, owner or admin")
	}
	if len(password) < 8 {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		phone:        strings.TrimSpace(phone),
		role:         role,
		passwordHash: string(hash),
		createdAt:    time.Now().UTC(),
	}, nil
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) Role() string         { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// CheckPassword verifies a plaintext password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// Reconstitute rebuilds a User from persisted data.
func Reconstitute(id uuid.UUID, name, email, phone, role, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		phone:        phone,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}
