package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByDate(t *testing.T) {
	rs := []*Reservation{
		NewReservation(1, "ana@example.com", at(9, 0), at(11, 0)),
		NewReservation(1, "ben@example.com", day().AddDate(0, 0, 1).Add(9*time.Hour), day().AddDate(0, 0, 1).Add(10*time.Hour)),
		NewReservation(1, "ana@example.com", at(13, 0), at(15, 0)),
	}
	rs[2].Cancel()

	got := FilterByDate(rs, day())
	require.Len(t, got, 1)
	assert.Same(t, rs[0], got[0])
}

func TestFilterByDate_Idempotent(t *testing.T) {
	rs := []*Reservation{
		NewReservation(1, "ana@example.com", at(9, 0), at(11, 0)),
		NewReservation(1, "ben@example.com", at(11, 0), at(12, 0)),
	}
	first := FilterByDate(rs, day())
	second := FilterByDate(rs, day())
	assert.Equal(t, first, second)
	assert.Len(t, rs, 2)
}

func TestFilterByUser(t *testing.T) {
	now := at(10, 0)
	grace := time.Hour
	stale := NewReservation(1, "ana@example.com", day().Add(-2*time.Hour), day().Add(-time.Hour))
	inGrace := NewReservation(1, "ana@example.com", day().Add(-30*time.Minute), day())
	today := NewReservation(1, "ana@example.com", at(13, 0), at(15, 0))
	other := NewReservation(1, "ben@example.com", at(16, 0), at(17, 0))
	cancelled := NewReservation(1, "ana@example.com", at(18, 0), at(19, 0))
	cancelled.Cancel()

	got := FilterByUser([]*Reservation{stale, inGrace, today, other, cancelled}, "ana@example.com", now, grace)
	require.Len(t, got, 2)
	assert.Same(t, inGrace, got[0])
	assert.Same(t, today, got[1])
}

func TestDeriveStatus(t *testing.T) {
	windowStart := day()
	windowEnd := day().Add(24 * time.Hour)

	tests := []struct {
		name      string
		available bool
		windows   [][2]time.Time
		winStart  time.Time
		winEnd    time.Time
		want      SeatStatus
	}{
		{
			name: "no reservations", available: true,
			winStart: windowStart, winEnd: windowEnd,
			want: StatusAvailable,
		},
		{
			name: "single booking inside window", available: true,
			windows:  [][2]time.Time{{at(3, 0), at(5, 0)}},
			winStart: windowStart, winEnd: windowEnd,
			want: StatusPartiallyBooked,
		},
		{
			name: "two bookings covering the whole window", available: true,
			windows:  [][2]time.Time{{at(0, 0), at(3, 0)}, {at(3, 0), at(6, 0)}},
			winStart: day(), winEnd: at(6, 0),
			want: StatusFullyBooked,
		},
		{
			name: "gap between bookings", available: true,
			windows:  [][2]time.Time{{at(0, 0), at(2, 0)}, {at(3, 0), at(6, 0)}},
			winStart: day(), winEnd: at(6, 0),
			want: StatusPartiallyBooked,
		},
		{
			name: "coverage spilling past the window still counts", available: true,
			windows:  [][2]time.Time{{day().Add(-time.Hour), at(7, 0)}},
			winStart: day(), winEnd: at(6, 0),
			want: StatusFullyBooked,
		},
		{
			name: "unavailable overrides bookings", available: false,
			windows:  [][2]time.Time{{at(3, 0), at(5, 0)}},
			winStart: windowStart, winEnd: windowEnd,
			want: StatusUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Seat{ID: 1, Name: "B-14", Available: tt.available}
			for _, w := range tt.windows {
				s.Reservations = append(s.Reservations, NewReservation(1, "ana@example.com", w[0], w[1]))
			}
			assert.Equal(t, tt.want, DeriveStatus(s, tt.winStart, tt.winEnd))
		})
	}
}

func TestDeriveStatus_IgnoresCancelled(t *testing.T) {
	s := &Seat{ID: 1, Name: "B-14", Available: true}
	r := NewReservation(1, "ana@example.com", at(0, 0), at(6, 0))
	s.Reservations = append(s.Reservations, r)
	require.Equal(t, StatusFullyBooked, DeriveStatus(s, day(), at(6, 0)))

	r.Cancel()
	assert.Equal(t, StatusAvailable, DeriveStatus(s, day(), at(6, 0)))
}
