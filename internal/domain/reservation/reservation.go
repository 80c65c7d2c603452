package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/morada-homes/service-reservation/internal/domain"
)

// Status represents the lifecycle status of a reservation. The set is closed;
// the wire literals are the ones the historical data files use.
type Status string

const (
	StatusPending    Status = "pendente"
	StatusConfirmed  Status = "confirmada"
	StatusCancelled  Status = "cancelada"
	StatusInProgress Status = "em_andamento"
	StatusCompleted  Status = "finalizada"
)

// ParseStatus converts a wire literal into a Status, failing for anything
// outside the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusInProgress, StatusCompleted:
		return Status(s), nil
	default:
		return "", domain.NewInvalidStateError(s)
	}
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Reservation is the aggregate root for a property stay. The total amount is
// fixed at creation; the status field is mutated exclusively through the state
// machine in this package.
type Reservation struct {
	id          uuid.UUID
	propertyID  uuid.UUID
	guestID     uuid.UUID
	checkIn     time.Time
	checkOut    time.Time
	guestCount  int
	totalAmount float64
	status      Status
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// --- Getters ---

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) PropertyID() uuid.UUID { return r.propertyID }
func (r *Reservation) GuestID() uuid.UUID    { return r.guestID }
func (r *Reservation) CheckIn() time.Time    { return r.checkIn }
func (r *Reservation) CheckOut() time.Time   { return r.checkOut }
func (r *Reservation) GuestCount() int       { return r.guestCount }
func (r *Reservation) TotalAmount() float64  { return r.totalAmount }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Version() int64        { return r.version }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}

// setStatus applies a lifecycle mutation. Only the state implementations in
// this package call it.
func (r *Reservation) setStatus(status Status) {
	r.status = status
	r.updatedAt = time.Now().UTC()
}

// Reconstitute rebuilds a Reservation from persisted data.
func Reconstitute(
	id, propertyID, guestID uuid.UUID,
	checkIn, checkOut time.Time,
	guestCount int,
	totalAmount float64,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		propertyID:  propertyID,
		guestID:     guestID,
		checkIn:     checkIn,
		checkOut:    checkOut,
		guestCount:  guestCount,
		totalAmount: totalAmount,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}
