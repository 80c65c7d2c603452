package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morada-homes/service-reservation/internal/domain/property"
)

// CreatePropertyRequest holds data to list a new property.
type CreatePropertyRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address" binding:"required"`
	NightlyRate float64 `json:"nightly_rate" binding:"required,gt=0"`
	MaxGuests   int     `json:"max_guests" binding:"required,gt=0"`
}

// PropertyDTO is the API response representation of a property.
type PropertyDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	NightlyRate float64   `json:"nightly_rate"`
	MaxGuests   int       `json:"max_guests"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuoteDTO is the priced stay returned by the quote endpoint.
type QuoteDTO struct {
	PropertyID  uuid.UUID `json:"property_id"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	TotalAmount float64   `json:"total_amount"`
}

// PropertyService handles property listing use cases.
type PropertyService struct {
	repo   property.Repository
	logger *zap.Logger
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(repo property.Repository, logger *zap.Logger) *PropertyService {
	return &PropertyService{repo: repo, logger: logger}
}

// CreateProperty lists a new property for the given owner.
func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, req CreatePropertyRequest) (*PropertyDTO, error) {
	p, err := property.NewProperty(ownerID, req.Title, req.Description, req.Address, req.NightlyRate, req.MaxGuests)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("property listed",
		zap.String("property_id", p.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)

	dto := toPropertyDTO(p)
	return &dto, nil
}

// GetProperty retrieves a property by its ID.
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toPropertyDTO(p)
	return &dto, nil
}

// ListProperties returns all property listings.
func (s *PropertyService) ListProperties(ctx context.Context) ([]PropertyDTO, error) {
	properties, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		dtos[i] = toPropertyDTO(p)
	}
	return dtos, nil
}

// QuoteStay prices a stay at the given property.
func (s *PropertyService) QuoteStay(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*QuoteDTO, error) {
	p, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	total, err := p.QuoteStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &QuoteDTO{
		PropertyID:  propertyID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: total,
	}, nil
}

func toPropertyDTO(p *property.Property) PropertyDTO {
	return PropertyDTO{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Title:       p.Title(),
		Description: p.Description(),
		Address:     p.Address(),
		NightlyRate: p.NightlyRate(),
		MaxGuests:   p.MaxGuests(),
		CreatedAt:   p.CreatedAt(),
	}
}
