package booking

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// State is a query token selecting a slice of a user's bookings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState validates a state token. Tokens are case-sensitive.
func ParseState(token string) (State, error) {
	switch State(token) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(token), nil
	}
	return "", apperror.BadRequest("Unknown state: " + token)
}

// FilterByState applies the state predicate to a pre-sorted booking list.
// The reference time is passed in by the caller so the result is
// deterministic; no clock is read here. StateAll returns the input
// unchanged.
func FilterByState(bookings []*Booking, state State, now time.Time) []*Booking {
	if state == StateAll {
		return bookings
	}

	var match func(*Booking) bool
	switch state {
	case StateCurrent:
		match = func(b *Booking) bool {
			return b.StartTime.Before(now) && b.EndTime.After(now)
		}
	case StatePast:
		match = func(b *Booking) bool { return b.EndTime.Before(now) }
	case StateFuture:
		match = func(b *Booking) bool { return b.StartTime.After(now) }
	case StateWaiting:
		match = func(b *Booking) bool { return b.Status == StatusWaiting }
	case StateRejected:
		match = func(b *Booking) bool { return b.Status == StatusRejected }
	default:
		return nil
	}

	filtered := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if match(b) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
