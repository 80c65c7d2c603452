package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morada-homes/service-reservation/internal/domain"
	reservationDomain "github.com/morada-homes/service-reservation/internal/domain/reservation"
)

// ReservationModel is the GORM persistence model for the reservations table.
type ReservationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	GuestID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckIn     time.Time `gorm:"type:timestamptz;not null"`
	CheckOut    time.Time `gorm:"type:timestamptz;not null"`
	GuestCount  int       `gorm:"not null"`
	TotalAmount float64   `gorm:"type:numeric(12,2);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pendente';index"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (ReservationModel) TableName() string {
	return "reservations"
}

// ReservationRepositoryImpl is the GORM-based implementation of reservation.Repository.
type ReservationRepositoryImpl struct {
	db *gorm.DB
}

// NewReservationRepository creates a new GORM-based reservation repository.
func NewReservationRepository(db *gorm.DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{db: db}
}

// FindByID retrieves a reservation by its unique ID.
func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("reservation", id.String())
		}
		return nil, err
	}
	return reservationToDomain(&model)
}

// ListAll retrieves all reservations with pagination.
func (r *ReservationRepositoryImpl) ListAll(ctx context.Context, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i := range models {
		agg, err := reservationToDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = agg
	}
	return reservations, total, nil
}

// ListByStatus retrieves all reservations in the given status.
func (r *ReservationRepositoryImpl) ListByStatus(ctx context.Context, status reservationDomain.Status) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i := range models {
		agg, err := reservationToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		reservations[i] = agg
	}
	return reservations, nil
}

// CountByStatus returns the number of reservations per status.
func (r *ReservationRepositoryImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new reservation aggregate.
func (r *ReservationRepositoryImpl) Save(ctx context.Context, agg *reservationDomain.Reservation) error {
	model := reservationToModel(agg)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing reservation with optimistic locking.
func (r *ReservationRepositoryImpl) Update(ctx context.Context, agg *reservationDomain.Reservation) error {
	model := reservationToModel(agg)
	previousVersion := agg.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("reservation was modified by another transaction")
	}
	return nil
}

// reservationToDomain maps a ReservationModel to the domain aggregate.
func reservationToDomain(model *ReservationModel) (*reservationDomain.Reservation, error) {
	status, err := reservationDomain.ParseStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return reservationDomain.Reconstitute(
		model.ID,
		model.PropertyID,
		model.GuestID,
		model.CheckIn,
		model.CheckOut,
		model.GuestCount,
		model.TotalAmount,
		status,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

// reservationToModel maps the domain aggregate to a ReservationModel.
func reservationToModel(agg *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:          agg.ID(),
		PropertyID:  agg.PropertyID(),
		GuestID:     agg.GuestID(),
		CheckIn:     agg.CheckIn(),
		CheckOut:    agg.CheckOut(),
		GuestCount:  agg.GuestCount(),
		TotalAmount: agg.TotalAmount(),
		Status:      string(agg.Status()),
		Version:     agg.Version(),
		CreatedAt:   agg.CreatedAt(),
		UpdatedAt:   agg.UpdatedAt(),
	}
}
