package item

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNotOwner            = apperror.NotFound("item does not belong to user")
	ErrNameRequired        = apperror.BadRequest("name is required")
	ErrDescriptionRequired = apperror.BadRequest("description is required")
	ErrCommentTextRequired = apperror.BadRequest("comment text is required")
	ErrNoFinishedBooking   = apperror.BadRequest("user has no finished booking of this item")
)

// Item represents a listed thing that other users can book.
// The owner is referenced by id; RequestID links the item to the item
// request it fulfills, if any.
type Item struct {
	ID          string // UUID
	Name        string
	Description string
	OwnerID     string
	Available   bool
	RequestID   *string
	CreatedAt   time.Time
}

// Comment is feedback left by a renter after a finished booking.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// BookingRef is a minimal booking reference attached to an owner's item view.
type BookingRef struct {
	ID        string
	BookerID  string
	StartTime time.Time
	EndTime   time.Time
}

// BookingLookup answers the booking questions the item module needs.
// The booking module implements it; defining the interface here keeps the
// dependency pointing one way.
type BookingLookup interface {
	// LastAndNext returns the latest booking that started before now and
	// the earliest booking that starts after now, either may be nil.
	LastAndNext(ctx context.Context, itemID string, now time.Time) (last, next *BookingRef, err error)

	// HasFinished reports whether the booker has at least one booking of
	// the item whose end time has passed.
	HasFinished(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error)
}

// Details is an item enriched for display: comments always, booking refs
// only when the caller owns the item.
type Details struct {
	Item
	Comments    []*Comment
	LastBooking *BookingRef
	NextBooking *BookingRef
}
