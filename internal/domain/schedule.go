package domain

import (
	"sort"
	"time"
)

// SeatStatus classifies how booked a seat looks over a requested window.
// It is informational, used by browse endpoints, and intentionally
// separate from the admission conflict rule: status derivation is a
// coverage test over the whole window, not a pairwise boundary check.
type SeatStatus string

const (
	StatusAvailable       SeatStatus = "AVAILABLE"
	StatusPartiallyBooked SeatStatus = "PARTIALLY_BOOKED"
	StatusFullyBooked     SeatStatus = "FULLY_BOOKED"
	StatusUnavailable     SeatStatus = "UNAVAILABLE"
)

// FilterByDate returns the non-cancelled reservations whose start falls
// on the given calendar date. The input list is never modified; calling
// the filter twice on an unmodified seat yields identical results.
func FilterByDate(reservations []*Reservation, date time.Time) []*Reservation {
	y, m, d := date.Date()
	out := make([]*Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Cancelled {
			continue
		}
		ry, rm, rd := r.StartsAt.Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}

// FilterByUser returns the non-cancelled reservations belonging to the
// given user that are still worth showing: anything starting earlier
// than grace before the start of the current day is considered stale
// and dropped. The cutoff is day-start minus grace, not "now", so
// today's already-started bookings remain visible.
func FilterByUser(reservations []*Reservation, email string, now time.Time, grace time.Duration) []*Reservation {
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Add(-grace)
	out := make([]*Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Cancelled || r.UserEmail != email {
			continue
		}
		if r.StartsAt.Before(cutoff) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DeriveStatus classifies the seat over [windowStart, windowEnd). An
// unavailable seat is UNAVAILABLE regardless of bookings. Otherwise the
// active reservations overlapping the window are swept in start order:
// full gapless coverage of the window is FULLY_BOOKED, any overlap short
// of that is PARTIALLY_BOOKED, and no overlap at all is AVAILABLE.
func DeriveStatus(seat *Seat, windowStart, windowEnd time.Time) SeatStatus {
	if !seat.Available {
		return StatusUnavailable
	}
	overlapping := make([]*Reservation, 0)
	for _, r := range seat.Active() {
		if r.StartsAt.Before(windowEnd) && r.EndsAt.After(windowStart) {
			overlapping = append(overlapping, r)
		}
	}
	if len(overlapping) == 0 {
		return StatusAvailable
	}
	sort.Slice(overlapping, func(i, j int) bool {
		return overlapping[i].StartsAt.Before(overlapping[j].StartsAt)
	})
	covered := windowStart
	for _, r := range overlapping {
		if r.StartsAt.After(covered) {
			return StatusPartiallyBooked
		}
		if r.EndsAt.After(covered) {
			covered = r.EndsAt
		}
	}
	if covered.Before(windowEnd) {
		return StatusPartiallyBooked
	}
	return StatusFullyBooked
}
