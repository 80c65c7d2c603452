package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morada-homes/service-reservation/internal/adapter"
	"github.com/morada-homes/service-reservation/internal/domain"
	"github.com/morada-homes/service-reservation/internal/events"
	"github.com/morada-homes/service-reservation/internal/kafka"
	paymentDomain "github.com/morada-homes/service-reservation/internal/domain/payment"
	"github.com/morada-homes/service-reservation/internal/domain/reservation"
)

// ProcessPaymentRequest is the DTO for settling a reservation payment.
type ProcessPaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	Provider      string    `json:"provider" binding:"required"`
}

// PaymentOutcomeDTO reports the normalized provider result and, on success,
// the recorded payment.
type PaymentOutcomeDTO struct {
	Success         bool       `json:"success"`
	TransactionID   string     `json:"transaction_id"`
	Message         string     `json:"message"`
	ProcessedAmount float64    `json:"processed_amount"`
	Provider        string     `json:"provider"`
	PaymentID       *uuid.UUID `json:"payment_id,omitempty"`
}

// PaymentDTO is the API response DTO for a recorded payment.
type PaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Amount        float64   `json:"amount"`
	Provider      string    `json:"provider"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentStatsDTO holds settlement statistics for the admin dashboard.
type PaymentStatsDTO struct {
	TotalRevenue  float64          `json:"total_revenue"`
	TotalPayments int64            `json:"total_payments"`
	ByProvider    map[string]int64 `json:"by_provider"`
}

// PaymentService orchestrates payment settlement: it selects the provider
// adapter, runs the lookup against the reservation's total, and records the
// payment when the provider reports success.
type PaymentService struct {
	reservations reservation.Repository
	payments     paymentDomain.Repository
	processors   map[string]adapter.PaymentProcessor
	producer     EventPublisher
	logger       *zap.Logger
}

// NewPaymentService creates a PaymentService with the given processors keyed
// by their lowercase selector ("stripe", "paypal").
func NewPaymentService(
	reservations reservation.Repository,
	payments paymentDomain.Repository,
	processors map[string]adapter.PaymentProcessor,
	producer EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		reservations: reservations,
		payments:     payments,
		processors:   processors,
		producer:     producer,
		logger:       logger,
	}
}

// ProcessPayment settles a reservation through the named provider. An
// unrecognized provider is rejected before any processor is invoked and
// produces no payment result at all.
func (s *PaymentService) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*PaymentOutcomeDTO, error) {
	processor, ok := s.processors[strings.ToLower(req.Provider)]
	if !ok {
		s.logger.Warn("unsupported payment provider requested",
			zap.String("provider", req.Provider),
		)
		return nil, domain.NewUnsupportedProviderError(req.Provider)
	}

	r, err := s.reservations.FindByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("processing payment",
		zap.String("reservation_id", r.ID().String()),
		zap.String("provider", processor.ProviderName()),
		zap.Float64("amount", r.TotalAmount()),
	)

	result := processor.ProcessPayment(ctx, r.TotalAmount())

	outcome := &PaymentOutcomeDTO{
		Success:         result.Success,
		TransactionID:   result.TransactionID,
		Message:         result.Message,
		ProcessedAmount: result.ProcessedAmount,
		Provider:        processor.ProviderName(),
	}

	if !result.Success {
		s.logger.Warn("payment not settled",
			zap.String("reservation_id", r.ID().String()),
			zap.String("message", result.Message),
		)
		s.publishPaymentFailed(ctx, r.ID(), processor.ProviderName(), result.Message)
		return outcome, nil
	}

	p := paymentDomain.NewPayment(r.ID(), result.ProcessedAmount, processor.ProviderName(), result.TransactionID)
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", p.ID().String()),
		zap.String("reservation_id", r.ID().String()),
		zap.Float64("amount", p.Amount()),
	)

	s.publishPaymentProcessed(ctx, p)

	id := p.ID()
	outcome.PaymentID = &id
	return outcome, nil
}

// GetPaymentByReservation retrieves the payment recorded for a reservation.
func (s *PaymentService) GetPaymentByReservation(ctx context.Context, reservationID uuid.UUID) (*PaymentDTO, error) {
	p, err := s.payments.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	dto := toPaymentDTO(p)
	return &dto, nil
}

// ListAllPayments returns a paginated list of all payments (admin).
func (s *PaymentService) ListAllPayments(ctx context.Context, page, limit int) ([]PaymentDTO, int64, error) {
	payments, total, err := s.payments.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos, total, nil
}

// GetPaymentStats returns aggregate settlement statistics (admin).
func (s *PaymentService) GetPaymentStats(ctx context.Context) (*PaymentStatsDTO, error) {
	revenue, counts, err := s.payments.GetRevenueStats(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &PaymentStatsDTO{
		TotalRevenue:  revenue,
		TotalPayments: total,
		ByProvider:    counts,
	}, nil
}

func (s *PaymentService) publishPaymentProcessed(ctx context.Context, p *paymentDomain.Payment) {
	event := events.PaymentProcessedEvent{
		PaymentID:     p.ID(),
		ReservationID: p.ReservationID(),
		Provider:      p.Provider(),
		TransactionID: p.TransactionID(),
		Amount:        p.Amount(),
		OccurredAt:    time.Now().UTC(),
	}

	ce, err := kafka.NewCloudEvent("service-reservation", events.PaymentProcessed, event)
	if err != nil {
		s.logger.Error("failed to create payment processed event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicPaymentEvents, ce); err != nil {
		s.logger.Error("failed to publish payment processed event", zap.Error(err))
	}
}

func (s *PaymentService) publishPaymentFailed(ctx context.Context, reservationID uuid.UUID, provider, reason string) {
	event := events.PaymentFailedEvent{
		ReservationID: reservationID,
		Provider:      provider,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}

	ce, err := kafka.NewCloudEvent("service-reservation", events.PaymentFailed, event)
	if err != nil {
		s.logger.Error("failed to create payment failed event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicPaymentEvents, ce); err != nil {
		s.logger.Error("failed to publish payment failed event", zap.Error(err))
	}
}

func toPaymentDTO(p *paymentDomain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		ReservationID: p.ReservationID(),
		Amount:        p.Amount(),
		Provider:      p.Provider(),
		TransactionID: p.TransactionID(),
		Status:        p.Status(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
}
