package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morada-homes/service-reservation/internal/domain"
)

func TestBuilder_Build(t *testing.T) {
	propertyID := uuid.New()
	guestID := uuid.New()
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 13, 11, 0, 0, 0, time.UTC)

	r, err := NewBuilder().
		WithProperty(propertyID).
		WithGuest(guestID).
		WithDates(checkIn, checkOut).
		WithGuestCount(2).
		WithTotalAmount(450.0).
		Build()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, propertyID, r.PropertyID())
	assert.Equal(t, guestID, r.GuestID())
	assert.Equal(t, checkIn, r.CheckIn())
	assert.Equal(t, checkOut, r.CheckOut())
	assert.Equal(t, 2, r.GuestCount())
	assert.Equal(t, 450.0, r.TotalAmount())
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, int64(1), r.Version())
}

func TestBuilder_ZeroTotalIsValid(t *testing.T) {
	r, err := NewBuilder().
		WithProperty(uuid.New()).
		WithGuest(uuid.New()).
		WithDates(time.Now().UTC(), time.Now().UTC().Add(48*time.Hour)).
		WithGuestCount(1).
		WithTotalAmount(0).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.TotalAmount())
}

func TestBuilder_ValidationFailures(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(72 * time.Hour)

	complete := func() *Builder {
		return NewBuilder().
			WithProperty(uuid.New()).
			WithGuest(uuid.New()).
			WithDates(checkIn, checkOut).
			WithGuestCount(2).
			WithTotalAmount(300)
	}

	tests := []struct {
		name    string
		builder *Builder
	}{
		{"missing property", NewBuilder().WithGuest(uuid.New()).WithDates(checkIn, checkOut).WithGuestCount(2).WithTotalAmount(300)},
		{"missing guest", NewBuilder().WithProperty(uuid.New()).WithDates(checkIn, checkOut).WithGuestCount(2).WithTotalAmount(300)},
		{"missing dates", NewBuilder().WithProperty(uuid.New()).WithGuest(uuid.New()).WithGuestCount(2).WithTotalAmount(300)},
		{"check-out before check-in", complete().WithDates(checkOut, checkIn)},
		{"check-out equals check-in", complete().WithDates(checkIn, checkIn)},
		{"zero guest count", complete().WithGuestCount(0)},
		{"missing total", NewBuilder().WithProperty(uuid.New()).WithGuest(uuid.New()).WithDates(checkIn, checkOut).WithGuestCount(2)},
		{"negative total", complete().WithTotalAmount(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.builder.Build()
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, domain.ErrValidation), "expected validation error, got %v", err)
		})
	}
}
