package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morada-homes/service-reservation/internal/domain"
	"github.com/morada-homes/service-reservation/internal/events"
	"github.com/morada-homes/service-reservation/internal/kafka"
	"github.com/morada-homes/service-reservation/internal/domain/property"
	"github.com/morada-homes/service-reservation/internal/domain/reservation"
	"github.com/morada-homes/service-reservation/internal/domain/user"
)

// EventPublisher publishes CloudEvents to a topic. Satisfied by *kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateReservationRequest is the DTO for creating a reservation.
type CreateReservationRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required,gt=0"`
}

// ReservationDTO is the API response DTO for reservation data.
type ReservationDTO struct {
	ID               uuid.UUID `json:"id"`
	PropertyID       uuid.UUID `json:"property_id"`
	GuestID          uuid.UUID `json:"guest_id"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	GuestCount       int       `json:"guest_count"`
	TotalAmount      float64   `json:"total_amount"`
	Status           string    `json:"status"`
	AvailableActions []string  `json:"available_actions"`
	CreatedAt        time.Time `json:"created_at"`
}

// TransitionDTO reports the outcome of a lifecycle action.
type TransitionDTO struct {
	ReservationID    uuid.UUID `json:"reservation_id"`
	Action           string    `json:"action"`
	PreviousStatus   string    `json:"previous_status"`
	CurrentStatus    string    `json:"current_status"`
	Changed          bool      `json:"changed"`
	Message          string    `json:"message"`
	AvailableActions []string  `json:"available_actions"`
}

// keyedMutex serializes operations per reservation ID so that concurrent
// transition requests for the same reservation cannot race on its status.
// Requests for different reservations stay independent.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entityLock
}

type entityLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*entityLock)}
}

func (km *keyedMutex) lock(id uuid.UUID) func() {
	km.mu.Lock()
	l, ok := km.locks[id]
	if !ok {
		l = &entityLock{}
		km.locks[id] = l
	}
	l.refs++
	km.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		km.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(km.locks, id)
		}
		km.mu.Unlock()
	}
}

// ReservationService orchestrates reservation use cases: construction through
// the builder, lifecycle transitions through the state registry, and queries.
type ReservationService struct {
	reservations reservation.Repository
	properties   property.Repository
	users        user.Repository
	registry     *reservation.StateRegistry
	producer     EventPublisher
	locks        *keyedMutex
	logger       *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	reservations reservation.Repository,
	properties property.Repository,
	users user.Repository,
	registry *reservation.StateRegistry,
	producer EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		properties:   properties,
		users:        users,
		registry:     registry,
		producer:     producer,
		locks:        newKeyedMutex(),
		logger:       logger,
	}
}

// CreateReservation prices the stay against the property's nightly rate and
// stores a new pending reservation.
func (s *ReservationService) CreateReservation(ctx context.Context, guestID uuid.UUID, req CreateReservationRequest) (*ReservationDTO, error) {
	prop, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, guestID); err != nil {
		return nil, err
	}

	if !prop.Accommodates(req.GuestCount) {
		return nil, domain.NewValidationError("property cannot accommodate the requested number of guests")
	}

	total, err := prop.QuoteStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	r, err := reservation.NewBuilder().
		WithProperty(req.PropertyID).
		WithGuest(guestID).
		WithDates(req.CheckIn, req.CheckOut).
		WithGuestCount(req.GuestCount).
		WithTotalAmount(total).
		Build()
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", r.ID().String()),
		zap.String("property_id", req.PropertyID.String()),
		zap.Float64("total_amount", total),
	)

	s.publishReservationCreated(ctx, r)

	dto, err := s.toDTO(r)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// GetReservation retrieves a reservation together with its available actions.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationDTO, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(r)
}

// ListReservations returns a paginated list of reservations.
func (s *ReservationService) ListReservations(ctx context.Context, page, limit int) ([]ReservationDTO, int64, error) {
	rs, total, err := s.reservations.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]ReservationDTO, 0, len(rs))
	for _, r := range rs {
		dto, err := s.toDTO(r)
		if err != nil {
			return nil, 0, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, total, nil
}

// ListReservationsByStatus returns all reservations in the given status.
func (s *ReservationService) ListReservationsByStatus(ctx context.Context, status string) ([]ReservationDTO, error) {
	parsed, err := reservation.ParseStatus(status)
	if err != nil {
		return nil, domain.NewValidationError("unknown status " + status)
	}

	rs, err := s.reservations.ListByStatus(ctx, parsed)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReservationDTO, 0, len(rs))
	for _, r := range rs {
		dto, err := s.toDTO(r)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// ChangeStatus applies a lifecycle action to a reservation. Transitions for
// the same reservation are serialized; a rejected transition is a normal
// outcome reported through the DTO, not an error.
func (s *ReservationService) ChangeStatus(ctx context.Context, id uuid.UUID, action reservation.Action) (*TransitionDTO, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := r.Status()

	result, err := s.registry.Apply(action, r)
	if err != nil {
		return nil, err
	}

	if result.Changed {
		r.IncrementVersion()
		if err := s.reservations.Update(ctx, r); err != nil {
			return nil, err
		}
		s.publishStatusChanged(ctx, r, action, previous)
	}

	s.logger.Info("lifecycle action applied",
		zap.String("reservation_id", id.String()),
		zap.String("action", string(action)),
		zap.String("previous_status", string(previous)),
		zap.String("current_status", string(r.Status())),
		zap.Bool("changed", result.Changed),
	)

	state, err := s.registry.StateFor(r.Status())
	if err != nil {
		return nil, err
	}

	return &TransitionDTO{
		ReservationID:    id,
		Action:           string(action),
		PreviousStatus:   string(previous),
		CurrentStatus:    string(r.Status()),
		Changed:          result.Changed,
		Message:          result.Message,
		AvailableActions: actionNames(state.AvailableActions()),
	}, nil
}

// AvailableActions returns the actions currently legal for a reservation.
func (s *ReservationService) AvailableActions(ctx context.Context, id uuid.UUID) ([]string, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	state, err := s.registry.StateFor(r.Status())
	if err != nil {
		return nil, err
	}

	return actionNames(state.AvailableActions()), nil
}

// ReservationStats returns the count of reservations per status (admin).
func (s *ReservationService) ReservationStats(ctx context.Context) (map[string]int64, error) {
	return s.reservations.CountByStatus(ctx)
}

func (s *ReservationService) publishReservationCreated(ctx context.Context, r *reservation.Reservation) {
	event := events.ReservationCreatedEvent{
		ReservationID: r.ID(),
		PropertyID:    r.PropertyID(),
		GuestID:       r.GuestID(),
		CheckIn:       r.CheckIn(),
		CheckOut:      r.CheckOut(),
		TotalAmount:   r.TotalAmount(),
		OccurredAt:    time.Now().UTC(),
	}

	ce, err := kafka.NewCloudEvent("service-reservation", events.ReservationCreated, event)
	if err != nil {
		s.logger.Error("failed to create reservation created event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicReservationEvents, ce); err != nil {
		s.logger.Error("failed to publish reservation created event", zap.Error(err))
	}
}

func (s *ReservationService) publishStatusChanged(ctx context.Context, r *reservation.Reservation, action reservation.Action, previous reservation.Status) {
	event := events.ReservationStatusChangedEvent{
		ReservationID:  r.ID(),
		Action:         string(action),
		PreviousStatus: string(previous),
		CurrentStatus:  string(r.Status()),
		OccurredAt:     time.Now().UTC(),
	}

	ce, err := kafka.NewCloudEvent("service-reservation", events.ReservationStatusChanged, event)
	if err != nil {
		s.logger.Error("failed to create status changed event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicReservationEvents, ce); err != nil {
		s.logger.Error("failed to publish status changed event", zap.Error(err))
	}
}

func (s *ReservationService) toDTO(r *reservation.Reservation) (*ReservationDTO, error) {
	state, err := s.registry.StateFor(r.Status())
	if err != nil {
		return nil, err
	}

	return &ReservationDTO{
		ID:               r.ID(),
		PropertyID:       r.PropertyID(),
		GuestID:          r.GuestID(),
		CheckIn:          r.CheckIn(),
		CheckOut:         r.CheckOut(),
		GuestCount:       r.GuestCount(),
		TotalAmount:      r.TotalAmount(),
		Status:           string(r.Status()),
		AvailableActions: actionNames(state.AvailableActions()),
		CreatedAt:        r.CreatedAt(),
	}, nil
}

func actionNames(actions []reservation.Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}
