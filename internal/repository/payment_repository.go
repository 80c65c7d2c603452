package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morada-homes/service-reservation/internal/domain"
	paymentDomain "github.com/morada-homes/service-reservation/internal/domain/payment"
)

// PaymentModel is the GORM persistence model for the payments table.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReservationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Amount        float64   `gorm:"type:numeric(12,2);not null"`
	Provider      string    `gorm:"type:varchar(50);not null"`
	TransactionID string    `gorm:"type:varchar(255);not null"`
	Status        string    `gorm:"type:varchar(20);not null"`
	PaidAt        time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentRepositoryImpl is the GORM-based implementation of payment.Repository.
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new GORM-based payment repository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepositoryImpl {
	return &PaymentRepositoryImpl{db: db}
}

// FindByReservationID retrieves the payment recorded for a reservation.
func (r *PaymentRepositoryImpl) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("payment for reservation", reservationID.String())
		}
		return nil, err
	}
	return paymentToDomain(&model), nil
}

// ListAll retrieves all payments with pagination (admin).
func (r *PaymentRepositoryImpl) ListAll(ctx context.Context, page, limit int) ([]*paymentDomain.Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []PaymentModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*paymentDomain.Payment, len(models))
	for i := range models {
		payments[i] = paymentToDomain(&models[i])
	}
	return payments, total, nil
}

// GetRevenueStats returns total settled revenue and payment counts per provider.
func (r *PaymentRepositoryImpl) GetRevenueStats(ctx context.Context) (float64, map[string]int64, error) {
	var totalRevenue float64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return 0, nil, err
	}

	type providerCount struct {
		Provider string
		Count    int64
	}
	var results []providerCount
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).
		Select("provider, count(*) as count").
		Group("provider").
		Find(&results).Error; err != nil {
		return 0, nil, err
	}

	counts := make(map[string]int64)
	for _, pc := range results {
		counts[pc.Provider] = pc.Count
	}
	return totalRevenue, counts, nil
}

// Save persists a new payment record.
func (r *PaymentRepositoryImpl) Save(ctx context.Context, p *paymentDomain.Payment) error {
	model := &PaymentModel{
		ID:            p.ID(),
		ReservationID: p.ReservationID(),
		Amount:        p.Amount(),
		Provider:      p.Provider(),
		TransactionID: p.TransactionID(),
		Status:        p.Status(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// paymentToDomain maps a PaymentModel to the domain aggregate.
func paymentToDomain(model *PaymentModel) *paymentDomain.Payment {
	return paymentDomain.Reconstitute(
		model.ID,
		model.ReservationID,
		model.Amount,
		model.Provider,
		model.TransactionID,
		model.Status,
		model.PaidAt,
		model.CreatedAt,
	)
}
