package booking

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrOwnItem          = apperror.NotFound("owner and booker are the same user")
	ErrNotVisible       = apperror.NotFound("item does not belong to user")
	ErrItemUnavailable  = apperror.BadRequest("item is not available for booking")
	ErrAlreadyApproved  = apperror.BadRequest("booking is already approved")
	ErrNotOwnerApprove  = apperror.BadRequest("only the item owner can approve or reject a booking")
	ErrInvalidStatus    = apperror.BadRequest("invalid booking status")
	ErrInvalidTimeRange = apperror.BadRequest("start time must be before end time")
)

// Status is the booking lifecycle state. It is stored and compared as a
// string; nothing may depend on declaration order.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Booking holds the item and booker by id; the item name and owner id are
// filled from a repository join for display and authorization, the full
// item is never embedded.
type Booking struct {
	ID          string // UUID
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	StartTime   time.Time
	EndTime     time.Time
	Status      Status
	CreatedAt   time.Time
}
