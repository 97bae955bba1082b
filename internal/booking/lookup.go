package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

// itemLookup adapts the booking repository to the item module's
// BookingLookup interface.
type itemLookup struct {
	repo Repository
}

// NewItemLookup exposes booking queries to the item module.
func NewItemLookup(repo Repository) item.BookingLookup {
	return &itemLookup{repo: repo}
}

func (l *itemLookup) LastAndNext(ctx context.Context, itemID string, now time.Time) (*item.BookingRef, *item.BookingRef, error) {
	last, next, err := l.repo.FindLastAndNext(ctx, itemID, now)
	if err != nil {
		return nil, nil, err
	}
	return toBookingRef(last), toBookingRef(next), nil
}

func (l *itemLookup) HasFinished(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error) {
	return l.repo.HasFinished(ctx, bookerID, itemID, now)
}

func toBookingRef(b *Booking) *item.BookingRef {
	if b == nil {
		return nil
	}
	return &item.BookingRef{
		ID:        b.ID,
		BookerID:  b.BookerID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
