package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/morada-homes/service-reservation/internal/domain"
	propertyDomain "github.com/morada-homes/service-reservation/internal/domain/property"
)

// PropertyModel is the GORM persistence model for the properties table.
type PropertyModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Address     string    `gorm:"type:text;not null"`
	NightlyRate float64   `gorm:"type:numeric(12,2);not null"`
	MaxGuests   int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (PropertyModel) TableName() string {
	return "properties"
}

// PropertyRepositoryImpl is the GORM-based implementation of property.Repository.
type PropertyRepositoryImpl struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new GORM-based property repository.
func NewPropertyRepository(db *gorm.DB) *PropertyRepositoryImpl {
	return &PropertyRepositoryImpl{db: db}
}

// FindByID retrieves a property by its unique ID.
func (r *PropertyRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	var model PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("property", id.String())
		}
		return nil, err
	}
	return propertyToDomain(&model), nil
}

// ListAll retrieves all property listings.
func (r *PropertyRepositoryImpl) ListAll(ctx context.Context) ([]*propertyDomain.Property, error) {
	var models []PropertyModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	properties := make([]*propertyDomain.Property, len(models))
	for i := range models {
		properties[i] = propertyToDomain(&models[i])
	}
	return properties, nil
}

// Save persists a new property.
func (r *PropertyRepositoryImpl) Save(ctx context.Context, p *propertyDomain.Property) error {
	model := &PropertyModel{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Title:       p.Title(),
		Description: p.Description(),
		Address:     p.Address(),
		NightlyRate: p.NightlyRate(),
		MaxGuests:   p.MaxGuests(),
		CreatedAt:   p.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// propertyToDomain maps a PropertyModel to the domain aggregate.
func propertyToDomain(model *PropertyModel) *propertyDomain.Property {
	return propertyDomain.Reconstitute(
		model.ID,
		model.OwnerID,
		model.Title,
		model.Description,
		model.Address,
		model.NightlyRate,
		model.MaxGuests,
		model.CreatedAt,
	)
}
