package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("Valid Tokens", func(t *testing.T) {
		for _, token := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
			s, err := ParseState(token)
			require.NoError(t, err, "token %q should parse", token)
			assert.Equal(t, State(token), s)
		}
	})

	t.Run("Unknown Token", func(t *testing.T) {
		_, err := ParseState("FOO")
		require.Error(t, err)
		assert.Equal(t, "Unknown state: FOO", err.Error())
	})

	t.Run("Tokens Are Case Sensitive", func(t *testing.T) {
		_, err := ParseState("all")
		require.Error(t, err)
		assert.Equal(t, "Unknown state: all", err.Error())
	})
}

func TestFilterByState(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	past := &Booking{ID: "past", StartTime: now.Add(-3 * day), EndTime: now.Add(-2 * day), Status: StatusApproved}
	current := &Booking{ID: "current", StartTime: now.Add(-1 * day), EndTime: now.Add(1 * day), Status: StatusApproved}
	future := &Booking{ID: "future", StartTime: now.Add(2 * day), EndTime: now.Add(3 * day), Status: StatusWaiting}
	rejected := &Booking{ID: "rejected", StartTime: now.Add(4 * day), EndTime: now.Add(5 * day), Status: StatusRejected}

	all := []*Booking{rejected, future, current, past}

	t.Run("All Returns Input Unchanged", func(t *testing.T) {
		got := FilterByState(all, StateAll, now)
		assert.Equal(t, all, got)
	})

	t.Run("Current", func(t *testing.T) {
		got := FilterByState(all, StateCurrent, now)
		require.Len(t, got, 1)
		assert.Equal(t, "current", got[0].ID)
	})

	t.Run("Past", func(t *testing.T) {
		got := FilterByState(all, StatePast, now)
		require.Len(t, got, 1)
		assert.Equal(t, "past", got[0].ID)
	})

	t.Run("Future", func(t *testing.T) {
		got := FilterByState(all, StateFuture, now)
		require.Len(t, got, 2)
		assert.Equal(t, "rejected", got[0].ID)
		assert.Equal(t, "future", got[1].ID)
	})

	t.Run("Waiting", func(t *testing.T) {
		got := FilterByState(all, StateWaiting, now)
		require.Len(t, got, 1)
		assert.Equal(t, "future", got[0].ID)
	})

	t.Run("Rejected", func(t *testing.T) {
		got := FilterByState(all, StateRejected, now)
		require.Len(t, got, 1)
		assert.Equal(t, "rejected", got[0].ID)
	})

	t.Run("Time Filters Ignore Status", func(t *testing.T) {
		got := FilterByState(all, StateFuture, now)
		ids := []string{got[0].ID, got[1].ID}
		assert.Contains(t, ids, "rejected", "rejected bookings still count as future")
	})

	t.Run("Empty Input", func(t *testing.T) {
		got := FilterByState(nil, StatePast, now)
		assert.Empty(t, got)
	})
}
