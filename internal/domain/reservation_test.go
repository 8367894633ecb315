package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// day returns a fixed reference date so tests never depend on the wall
// clock. at builds an instant on that date at the given hour.
func day() time.Time {
	return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

func at(hour, min int) time.Time {
	return day().Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestValidateAgainst_TimeOrder(t *testing.T) {
	now := at(8, 0)
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"start before end is valid", at(13, 0), at(15, 0), nil},
		{"start equal to end fails", at(13, 0), at(13, 0), ErrInvalidTimeOrder},
		{"start after end fails", at(15, 0), at(13, 0), ErrInvalidTimeOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation(1, "ana@example.com", tt.start, tt.end)
			err := r.ValidateAgainst(nil, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateAgainst_Futurity(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"start in the future is valid", at(12, 0), nil},
		{"start equal to now fails", at(13, 0), ErrPastStartTime},
		{"start before now fails", at(14, 0), ErrPastStartTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation(1, "ana@example.com", at(13, 0), at(15, 0))
			err := r.ValidateAgainst(nil, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// The boundary table from the admission rule: an existing booking at
// [13:00,15:00) and four candidates probing each clause of the pairwise
// conflict policy. Back-to-back windows are allowed; identical start
// instants never are.
func TestValidateAgainst_ConflictTable(t *testing.T) {
	now := at(8, 0)
	existing := []*Reservation{
		NewReservation(1, "ana@example.com", at(13, 0), at(15, 0)),
	}
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"identical window conflicts on equal start", at(13, 0), at(15, 0), ErrTimeslotConflict},
		{"candidate start strictly inside existing", at(14, 0), at(16, 0), ErrTimeslotConflict},
		{"existing start strictly inside candidate", at(12, 0), at(14, 0), ErrTimeslotConflict},
		{"back-to-back after existing is free", at(15, 0), at(16, 0), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation(1, "ben@example.com", tt.start, tt.end)
			err := r.ValidateAgainst(existing, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateAgainst_BackToBackBefore(t *testing.T) {
	now := at(8, 0)
	existing := []*Reservation{
		NewReservation(1, "ana@example.com", at(13, 0), at(15, 0)),
	}
	// Ending exactly when the existing one begins is also free.
	r := NewReservation(1, "ben@example.com", at(12, 0), at(13, 0))
	require.NoError(t, r.ValidateAgainst(existing, now))
}

func TestValidateAgainst_OrderOfChecks(t *testing.T) {
	// A malformed window must fail on time order even when it would also
	// conflict with an existing reservation.
	now := at(8, 0)
	existing := []*Reservation{
		NewReservation(1, "ana@example.com", at(13, 0), at(15, 0)),
	}
	r := NewReservation(1, "ben@example.com", at(13, 0), at(13, 0))
	assert.ErrorIs(t, r.ValidateAgainst(existing, now), ErrInvalidTimeOrder)
}

func TestCheckIn(t *testing.T) {
	r := NewReservation(1, "ana@example.com", at(13, 0), at(15, 0))

	require.NoError(t, r.CheckIn("ana@example.com"))
	assert.True(t, r.CheckedIn)

	// The second call fails; check-in is deliberately not idempotent.
	assert.ErrorIs(t, r.CheckIn("ana@example.com"), ErrAlreadyCheckedIn)
	assert.True(t, r.CheckedIn)
}

func TestCheckIn_WrongUser(t *testing.T) {
	r := NewReservation(1, "ana@example.com", at(13, 0), at(15, 0))
	assert.ErrorIs(t, r.CheckIn("ben@example.com"), ErrWrongUser)
	assert.False(t, r.CheckedIn)
}

func TestCancel(t *testing.T) {
	r := NewReservation(1, "ana@example.com", at(13, 0), at(15, 0))
	r.Cancel()
	assert.True(t, r.Cancelled)

	// Cancelling twice is harmless; the flag is already set.
	r.Cancel()
	assert.True(t, r.Cancelled)
}

func TestInCheckInWindow(t *testing.T) {
	lead := 15 * time.Minute
	r := NewReservation(1, "ana@example.com", at(13, 0), at(15, 0))
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before lead window", at(12, 44), false},
		{"exactly at lead boundary", at(12, 45), true},
		{"during the reservation", at(14, 0), true},
		{"at end instant", at(15, 0), false},
		{"after end", at(15, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.InCheckInWindow(tt.now, lead))
		})
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidTimeOrder, ReasonInvalidTimeOrder},
		{ErrPastStartTime, ReasonPastStartTime},
		{ErrTimeslotConflict, ReasonTimeslotConflict},
		{ErrSeatUnavailable, ReasonUnavailableSeat},
		{ErrAlreadyCheckedIn, ReasonAlreadyCheckedIn},
		{ErrWrongUser, ReasonWrongUser},
		{ErrOutsideCheckInWindow, ReasonOutsideWindow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reason(tt.err))
	}
	assert.Empty(t, Reason(assert.AnError))
}
