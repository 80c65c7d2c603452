package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/morada-homes/service-reservation/internal/adapter"
	"github.com/morada-homes/service-reservation/internal/domain"
	"github.com/morada-homes/service-reservation/internal/kafka"
	paymentDomain "github.com/morada-homes/service-reservation/internal/domain/payment"
	"github.com/morada-homes/service-reservation/internal/domain/property"
	"github.com/morada-homes/service-reservation/internal/domain/reservation"
	"github.com/morada-homes/service-reservation/internal/domain/user"
)

// In-memory repository fakes for the application layer tests.

type fakeReservationRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*reservation.Reservation
	saves   int
	updates int
}

func newFakeReservationRepo(rs ...*reservation.Reservation) *fakeReservationRepo {
	repo := &fakeReservationRepo{byID: make(map[uuid.UUID]*reservation.Reservation)}
	for _, r := range rs {
		repo.byID[r.ID()] = r
	}
	return repo
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("reservation", id.String())
	}
	return r, nil
}

func (f *fakeReservationRepo) ListAll(_ context.Context, _, _ int) ([]*reservation.Reservation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rs := make([]*reservation.Reservation, 0, len(f.byID))
	for _, r := range f.byID {
		rs = append(rs, r)
	}
	return rs, int64(len(rs)), nil
}

func (f *fakeReservationRepo) ListByStatus(_ context.Context, status reservation.Status) ([]*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rs []*reservation.Reservation
	for _, r := range f.byID {
		if r.Status() == status {
			rs = append(rs, r)
		}
	}
	return rs, nil
}

func (f *fakeReservationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	for _, r := range f.byID {
		counts[string(r.Status())]++
	}
	return counts, nil
}

func (f *fakeReservationRepo) Save(_ context.Context, r *reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID()] = r
	f.saves++
	return nil
}

func (f *fakeReservationRepo) Update(_ context.Context, r *reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[r.ID()]; !ok {
		return domain.NewNotFoundError("reservation", r.ID().String())
	}
	f.byID[r.ID()] = r
	f.updates++
	return nil
}

type fakePaymentRepo struct {
	mu            sync.Mutex
	byReservation map[uuid.UUID]*paymentDomain.Payment
	saves         int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byReservation: make(map[uuid.UUID]*paymentDomain.Payment)}
}

func (f *fakePaymentRepo) FindByReservationID(_ context.Context, reservationID uuid.UUID) (*paymentDomain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byReservation[reservationID]
	if !ok {
		return nil, domain.NewNotFoundError("payment", reservationID.String())
	}
	return p, nil
}

func (f *fakePaymentRepo) ListAll(_ context.Context, _, _ int) ([]*paymentDomain.Payment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ps := make([]*paymentDomain.Payment, 0, len(f.byReservation))
	for _, p := range f.byReservation {
		ps = append(ps, p)
	}
	return ps, int64(len(ps)), nil
}

func (f *fakePaymentRepo) GetRevenueStats(_ context.Context) (float64, map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var revenue float64
	counts := make(map[string]int64)
	for _, p := range f.byReservation {
		revenue += p.Amount()
		counts[p.Provider()]++
	}
	return revenue, counts, nil
}

func (f *fakePaymentRepo) Save(_ context.Context, p *paymentDomain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byReservation[p.ReservationID()] = p
	f.saves++
	return nil
}

type fakePropertyRepo struct {
	byID map[uuid.UUID]*property.Property
}

func newFakePropertyRepo(ps ...*property.Property) *fakePropertyRepo {
	repo := &fakePropertyRepo{byID: make(map[uuid.UUID]*property.Property)}
	for _, p := range ps {
		repo.byID[p.ID()] = p
	}
	return repo
}

func (f *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("property", id.String())
	}
	return p, nil
}

func (f *fakePropertyRepo) ListAll(_ context.Context) ([]*property.Property, error) {
	ps := make([]*property.Property, 0, len(f.byID))
	for _, p := range f.byID {
		ps = append(ps, p)
	}
	return ps, nil
}

func (f *fakePropertyRepo) Save(_ context.Context, p *property.Property) error {
	f.byID[p.ID()] = p
	return nil
}

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo(us ...*user.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
	for _, u := range us {
		repo.byID[u.ID()] = u
		repo.byEmail[u.Email()] = u
	}
	return repo
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.NewNotFoundError("user", email)
	}
	return u, nil
}

func (f *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	f.byID[u.ID()] = u
	f.byEmail[u.Email()] = u
	return nil
}

// capturingPublisher records every event handed to it.
type capturingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []kafka.CloudEvent
}

func (c *capturingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return nil
}

func (c *capturingPublisher) eventTypes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]string, len(c.events))
	for i, e := range c.events {
		types[i] = e.Type
	}
	return types
}

// countingProcessor returns a canned result and counts its invocations.
type countingProcessor struct {
	name   string
	result adapter.PaymentResult
	calls  int
}

func (p *countingProcessor) ProcessPayment(_ context.Context, _ float64) adapter.PaymentResult {
	p.calls++
	return p.result
}

func (p *countingProcessor) ProviderName() string { return p.name }

func paymentForTest(reservationID uuid.UUID, amount float64, provider string) *paymentDomain.Payment {
	return paymentDomain.NewPayment(reservationID, amount, provider, "tx_"+uuid.NewString()[:8])
}
