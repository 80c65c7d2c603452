package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/morada-homes/service-reservation/internal/domain"
)

// Builder assembles a new Reservation step by step. The ID, pending status and
// creation timestamp are preset; Build enforces the required-field checklist.
type Builder struct {
	id          uuid.UUID
	propertyID  uuid.UUID
	guestID     uuid.UUID
	checkIn     time.Time
	checkOut    time.Time
	guestCount  int
	totalAmount float64
	totalSet    bool
	createdAt   time.Time
}

// NewBuilder starts a reservation with a fresh ID and pending status.
func NewBuilder() *Builder {
	return &Builder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithProperty sets the property being reserved.
func (b *Builder) WithProperty(propertyID uuid.UUID) *Builder {
	b.propertyID = propertyID
	return b
}

// WithGuest sets the reserving guest.
func (b *Builder) WithGuest(guestID uuid.UUID) *Builder {
	b.guestID = guestID
	return b
}

// WithDates sets the check-in and check-out dates.
func (b *Builder) WithDates(checkIn, checkOut time.Time) *Builder {
	b.checkIn = checkIn
	b.checkOut = checkOut
	return b
}

// WithGuestCount sets the number of guests.
func (b *Builder) WithGuestCount(count int) *Builder {
	b.guestCount = count
	return b
}

// WithTotalAmount sets the total value of the stay. A zero total is valid, so
// the builder tracks whether it was provided at all.
func (b *Builder) WithTotalAmount(amount float64) *Builder {
	b.totalAmount = amount
	b.totalSet = true
	return b
}

// Build validates the required fields and returns the pending reservation.
func (b *Builder) Build() (*Reservation, error) {
	switch {
	case b.propertyID == uuid.Nil:
		return nil, domain.NewValidationError("property is required")
	case b.guestID == uuid.Nil:
		return nil, domain.NewValidationError("guest is required")
	case b.checkIn.IsZero() || b.checkOut.IsZero():
		return nil, domain.NewValidationError("check-in and check-out dates are required")
	case !b.checkOut.After(b.checkIn):
		return nil, domain.NewValidationError("check-out must be after check-in")
	case b.guestCount <= 0:
		return nil, domain.NewValidationError("guest count must be positive")
	case !b.totalSet:
		return nil, domain.NewValidationError("total amount is required")
	case b.totalAmount < 0:
		return nil, domain.NewValidationError("total amount cannot be negative")
	}

	return &Reservation{
		id:          b.id,
		propertyID:  b.propertyID,
		guestID:     b.guestID,
		checkIn:     b.checkIn,
		checkOut:    b.checkOut,
		guestCount:  b.guestCount,
		totalAmount: b.totalAmount,
		status:      StatusPending,
		version:     1,
		createdAt:   b.createdAt,
		updatedAt:   b.createdAt,
	}, nil
}
