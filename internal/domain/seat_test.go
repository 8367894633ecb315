package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeat() *Seat {
	return &Seat{ID: 7, FloorID: 2, Name: "B-14", Available: true}
}

func TestAddReservation(t *testing.T) {
	now := at(8, 0)
	s := testSeat()

	r := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	require.NoError(t, s.AddReservation(r, now))

	assert.Len(t, s.Reservations, 1)
	assert.Equal(t, s.ID, r.SeatID)
}

func TestAddReservation_UnavailableSeat(t *testing.T) {
	now := at(8, 0)
	s := testSeat()
	s.Available = false

	// Unavailability wins before any time-window logic; even a window
	// that would otherwise be malformed reports the seat first.
	r := NewReservation(0, "ana@example.com", at(13, 0), at(13, 0))
	assert.ErrorIs(t, s.AddReservation(r, now), ErrSeatUnavailable)
	assert.Empty(t, s.Reservations)
}

func TestAddReservation_NoPartialMutation(t *testing.T) {
	now := at(8, 0)
	s := testSeat()
	require.NoError(t, s.AddReservation(NewReservation(0, "ana@example.com", at(13, 0), at(15, 0)), now))

	conflict := NewReservation(0, "ben@example.com", at(14, 0), at(16, 0))
	assert.ErrorIs(t, s.AddReservation(conflict, now), ErrTimeslotConflict)
	assert.Len(t, s.Reservations, 1)
}

func TestAddReservation_CancelledDoesNotBlock(t *testing.T) {
	now := at(8, 0)
	s := testSeat()
	first := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	require.NoError(t, s.AddReservation(first, now))

	// Identical window is rejected while the first booking is active.
	retry := NewReservation(0, "ben@example.com", at(13, 0), at(15, 0))
	require.ErrorIs(t, s.AddReservation(retry, now), ErrTimeslotConflict)

	// After cancellation the same window is admissible again, and the
	// cancelled entry stays in the stored list for history.
	first.Cancel()
	require.NoError(t, s.AddReservation(retry, now))
	assert.Len(t, s.Reservations, 2)
	assert.Len(t, s.Active(), 1)
}

func TestAddReservation_GrowsByOne(t *testing.T) {
	now := at(8, 0)
	s := testSeat()
	windows := []struct{ start, end time.Time }{
		{at(9, 0), at(11, 0)},
		{at(11, 0), at(12, 0)},
		{at(13, 0), at(15, 0)},
	}
	for i, w := range windows {
		require.NoError(t, s.AddReservation(NewReservation(0, "ana@example.com", w.start, w.end), now))
		assert.Len(t, s.Reservations, i+1)
	}
}

func TestSeatCheckIn(t *testing.T) {
	lead := 15 * time.Minute
	s := testSeat()
	r := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	require.NoError(t, s.AddReservation(r, at(8, 0)))

	tests := []struct {
		name    string
		email   string
		now     time.Time
		wantErr error
	}{
		{"too early", "ana@example.com", at(12, 30), ErrOutsideCheckInWindow},
		{"wrong user inside window", "ben@example.com", at(13, 5), ErrWrongUser},
		{"owner inside lead window", "ana@example.com", at(12, 50), nil},
		{"second check-in rejected", "ana@example.com", at(13, 5), ErrAlreadyCheckedIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CheckIn(tt.email, tt.now, lead)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Same(t, r, got)
			assert.True(t, r.CheckedIn)
		})
	}
}

func TestSeatCheckIn_LeadOverlapPicksOwnBooking(t *testing.T) {
	lead := 15 * time.Minute
	s := testSeat()
	first := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	second := NewReservation(0, "ben@example.com", at(15, 0), at(17, 0))
	require.NoError(t, s.AddReservation(first, at(8, 0)))
	require.NoError(t, s.AddReservation(second, at(8, 0)))

	// At 14:50 ana's booking is still running and ben's lead window has
	// already opened; each user lands on their own reservation.
	got, err := s.CheckIn("ben@example.com", at(14, 50), lead)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.False(t, first.CheckedIn)

	got, err = s.CheckIn("ana@example.com", at(14, 50), lead)
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestSeatCheckIn_BackToBackSameUser(t *testing.T) {
	lead := 15 * time.Minute
	s := testSeat()
	first := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	second := NewReservation(0, "ana@example.com", at(15, 0), at(17, 0))
	require.NoError(t, s.AddReservation(first, at(8, 0)))
	require.NoError(t, s.AddReservation(second, at(8, 0)))

	got, err := s.CheckIn("ana@example.com", at(13, 5), lead)
	require.NoError(t, err)
	assert.Same(t, first, got)

	// With the first booking attended, the same call during the lead
	// overlap moves on to the second one instead of refusing.
	got, err = s.CheckIn("ana@example.com", at(14, 50), lead)
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = s.CheckIn("ana@example.com", at(14, 55), lead)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestSeatCheckIn_AfterEnd(t *testing.T) {
	s := testSeat()
	r := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	require.NoError(t, s.AddReservation(r, at(8, 0)))

	_, err := s.CheckIn("ana@example.com", at(15, 0), 15*time.Minute)
	assert.ErrorIs(t, err, ErrOutsideCheckInWindow)
}

func TestSeatCheckIn_SkipsCancelled(t *testing.T) {
	s := testSeat()
	r := NewReservation(0, "ana@example.com", at(13, 0), at(15, 0))
	require.NoError(t, s.AddReservation(r, at(8, 0)))
	r.Cancel()

	_, err := s.CheckIn("ana@example.com", at(13, 5), 15*time.Minute)
	assert.ErrorIs(t, err, ErrOutsideCheckInWindow)
}

func TestActive(t *testing.T) {
	s := testSeat()
	a := NewReservation(0, "ana@example.com", at(9, 0), at(10, 0))
	b := NewReservation(0, "ben@example.com", at(10, 0), at(11, 0))
	require.NoError(t, s.AddReservation(a, at(8, 0)))
	require.NoError(t, s.AddReservation(b, at(8, 0)))
	b.Cancel()

	active := s.Active()
	require.Len(t, active, 1)
	assert.Same(t, a, active[0])
	// The stored list keeps the cancelled entry.
	assert.Len(t, s.Reservations, 2)
}
