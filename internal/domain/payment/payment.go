package payment

import (
	"time"

	"github.com/google/uuid"
)

// StatusPaid is the only status a recorded payment can carry: payments are
// created only after a provider reports a successful settlement.
const StatusPaid = "pago"

// Payment records a settled reservation payment. The amount is the value the
// provider actually reported as processed, which may differ from the amount
// originally requested.
type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amount        float64
	provider      string
	transactionID string
	status        string
	paidAt        time.Time
	createdAt     time.Time
}

// NewPayment records a successful settlement reported by the given provider.
func NewPayment(reservationID uuid.UUID, amount float64, provider, transactionID string) *Payment {
	now := time.Now().UTC()
	return &Payment{
		id:            uuid.New(),
		reservationID: reservationID,
		amount:        amount,
		provider:      provider,
		transactionID: transactionID,
		status:        StatusPaid,
		paidAt:        now,
		createdAt:     now,
	}
}

// --- Getters ---

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) Amount() float64          { return p.amount }
func (p *Payment) Provider() string         { return p.provider }
func (p *Payment) TransactionID() string    { return p.transactionID }
func (p *Payment) Status() string           { return p.status }
func (p *Payment) PaidAt() time.Time        { return p.paidAt }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }

// Reconstitute rebuilds a Payment from persisted data.
func Reconstitute(id, reservationID uuid.UUID, amount float64, provider, transactionID, status string, paidAt, createdAt time.Time) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		provider:      provider,
		transactionID: transactionID,
		status:        status,
		paidAt:        paidAt,
		createdAt:     createdAt,
	}
}
