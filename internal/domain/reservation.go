package domain

import "time"

// Reservation is a time-bounded claim on a seat by a user. A reservation
// is created in memory by the request layer and validated against its
// peers at the moment it is attached to a seat. Cancellation is soft:
// cancelled reservations stay in the seat's history but stop
// participating in conflict checks. Both CheckedIn and Cancelled are
// monotonic; the core never flips either back to false.
type Reservation struct {
	ID        uint64    // zero until assigned by storage
	SeatID    uint64    // owning seat
	UserEmail string    // user attribution; users are keyed by email
	StartsAt  time.Time // inclusive start of the booked window
	EndsAt    time.Time // exclusive end of the booked window
	CheckedIn bool
	Cancelled bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReservation builds an unpersisted reservation for the given seat,
// user and window. No validation happens here; ValidateAgainst runs when
// the reservation is added to a seat.
func NewReservation(seatID uint64, userEmail string, startsAt, endsAt time.Time) *Reservation {
	return &Reservation{
		SeatID:    seatID,
		UserEmail: userEmail,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	}
}

// ConflictsWith reports whether r and other cannot both be admitted on
// the same seat. The rule is deliberately not a symmetric interval
// overlap test:
//
//  1. equal start instants always conflict, even for zero-length overlap;
//  2. r starting strictly inside other conflicts;
//  3. other starting strictly inside r conflicts.
//
// Windows that merely touch (one ends exactly when the other begins) are
// free, so back-to-back bookings are valid. Existing bookings depend on
// these exact boundary semantics; do not replace this with a generic
// maxStart < minEnd check.
func (r *Reservation) ConflictsWith(other *Reservation) bool {
	if r.StartsAt.Equal(other.StartsAt) {
		return true
	}
	if r.StartsAt.After(other.StartsAt) && r.StartsAt.Before(other.EndsAt) {
		return true
	}
	if other.StartsAt.After(r.StartsAt) && other.StartsAt.Before(r.EndsAt) {
		return true
	}
	return false
}

// ValidateAgainst decides whether r may join a seat whose current
// non-cancelled reservations are given in existing. Checks run in order
// and short-circuit on the first failure: time ordering, futurity
// against the supplied now, then a pairwise conflict scan. The caller is
// responsible for filtering cancelled reservations out of existing.
func (r *Reservation) ValidateAgainst(existing []*Reservation, now time.Time) error {
	if !r.StartsAt.Before(r.EndsAt) {
		return ErrInvalidTimeOrder
	}
	if !r.StartsAt.After(now) {
		return ErrPastStartTime
	}
	for _, e := range existing {
		if r.ConflictsWith(e) {
			return ErrTimeslotConflict
		}
	}
	return nil
}

// CheckIn marks the reservation as attended by the acting user. It fails
// with ErrAlreadyCheckedIn on a repeated call and with ErrWrongUser when
// actingEmail differs from the reservation's owner. Whether "now" falls
// inside the permitted window is the seat's concern, not this method's.
func (r *Reservation) CheckIn(actingEmail string) error {
	if r.CheckedIn {
		return ErrAlreadyCheckedIn
	}
	if actingEmail != r.UserEmail {
		return ErrWrongUser
	}
	r.CheckedIn = true
	return nil
}

// Cancel retires the reservation from future conflict consideration.
// It always succeeds; cancelling an already-cancelled reservation is
// harmless because the flag is already set.
func (r *Reservation) Cancel() {
	r.Cancelled = true
}

// InCheckInWindow reports whether now falls within [StartsAt-lead, EndsAt).
func (r *Reservation) InCheckInWindow(now time.Time, lead time.Duration) bool {
	return !now.Before(r.StartsAt.Add(-lead)) && now.Before(r.EndsAt)
}
