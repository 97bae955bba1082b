package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
)

func TestCreateBookingRequestValidate(t *testing.T) {
	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Start Before End", func(t *testing.T) {
		req := CreateBookingRequest{StartTime: start, EndTime: start.Add(time.Hour)}
		assert.NoError(t, req.Validate())
	})

	t.Run("Start Equals End", func(t *testing.T) {
		req := CreateBookingRequest{StartTime: start, EndTime: start}
		assert.ErrorIs(t, req.Validate(), booking.ErrInvalidTimeRange)
	})

	t.Run("Start After End", func(t *testing.T) {
		req := CreateBookingRequest{StartTime: start.Add(time.Hour), EndTime: start}
		assert.ErrorIs(t, req.Validate(), booking.ErrInvalidTimeRange)
	})
}

func TestNewBookingResponse(t *testing.T) {
	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	b := &booking.Booking{
		ID:        "b1",
		ItemID:    "item-1",
		ItemName:  "Drill",
		BookerID:  "booker-1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    booking.StatusWaiting,
	}

	resp := NewBookingResponse(b)
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "item-1", resp.Item.ID)
	assert.Equal(t, "Drill", resp.Item.Name)
	assert.Equal(t, "booker-1", resp.Booker.ID)
	assert.Equal(t, "WAITING", resp.Status)
}
