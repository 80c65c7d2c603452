package property

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/morada-homes/service-reservation/internal/domain"
)

// Property is the aggregate root for a rentable property.
type Property struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       string
	description string
	address     string
	nightlyRate float64
	maxGuests   int
	createdAt   time.Time
}

// NewProperty creates a new property listing.
func NewProperty(ownerID uuid.UUID, title, description, address string, nightlyRate float64, maxGuests int) (*Property, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, domain.NewValidationError("address is required")
	}
	if nightlyRate <= 0 {
		return nil, domain.NewValidationError("nightly rate must be positive")
	}
	if maxGuests <= 0 {
		return nil, domain.NewValidationError("max guests must be positive")
	}

	return &Property{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		description: description,
		address:     address,
		nightlyRate: nightlyRate,
		maxGuests:   maxGuests,
		createdAt:   time.Now().UTC(),
	}, nil
}

// --- Getters ---

func (p *Property) ID() uuid.UUID        { return p.id }
func (p *Property) OwnerID() uuid.UUID   { return p.ownerID }
func (p *Property) Title() string        { return p.title }
func (p *Property) Description() string  { return p.description }
func (p *Property) Address() string      { return p.address }
func (p *Property) NightlyRate() float64 { return p.nightlyRate }
func (p *Property) MaxGuests() int       { return p.maxGuests }
func (p *Property) CreatedAt() time.Time { return p.createdAt }

// QuoteStay prices a stay between the given dates. Partial nights round up.
func (p *Property) QuoteStay(checkIn, checkOut time.Time) (float64, error) {
	if !checkOut.After(checkIn) {
		return 0, domain.NewValidationError("check-out must be after check-in")
	}
	nights := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	return nights * p.nightlyRate, nil
}

// Accommodates reports whether the property can host the given party size.
func (p *Property) Accommodates(guests int) bool {
	return guests > 0 && guests <= p.maxGuests
}

// Reconstitute rebuilds a Property from persisted data.
func Reconstitute(id, ownerID uuid.UUID, title, description, address string, nightlyRate float64, maxGuests int, createdAt time.Time) *Property {
	return &Property{
		id:          id,
		ownerID:     ownerID,
		title:       title,
		description: description,
		address:     address,
		nightlyRate: nightlyRate,
		maxGuests:   maxGuests,
		createdAt:   createdAt,
	}
}
