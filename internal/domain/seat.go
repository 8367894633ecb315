package domain

import "time"

// Seat is the aggregate the admission rules operate on: one physical
// bookable seat together with its full reservation history, cancelled
// entries included. The list is ordered by insertion, not by time.
// Version carries the optimistic-lock counter of the underlying row so
// that the persistence layer can enforce at-most-one-writer-wins per
// seat; the domain itself never touches it.
type Seat struct {
	ID           uint64
	FloorID      uint64
	Name         string
	Available    bool
	PosX         int32 // floor-map rendering metadata, opaque to the rules here
	PosY         int32
	Version      uint32
	Reservations []*Reservation
}

// Active returns the non-cancelled projection of the reservation list.
// Conflict checks and check-in selection must always go through this
// view; the stored list keeps cancelled entries for history.
func (s *Seat) Active() []*Reservation {
	active := make([]*Reservation, 0, len(s.Reservations))
	for _, r := range s.Reservations {
		if !r.Cancelled {
			active = append(active, r)
		}
	}
	return active
}

// AddReservation applies the admission protocol for a candidate
// reservation at the given instant. An unavailable seat rejects the
// attempt before any time-window logic runs. Otherwise the candidate
// validates itself against the seat's active reservations and, on
// success, is appended to the stored list. On failure the seat is left
// untouched.
func (s *Seat) AddReservation(r *Reservation, now time.Time) error {
	if !s.Available {
		return ErrSeatUnavailable
	}
	if err := r.ValidateAgainst(s.Active(), now); err != nil {
		return err
	}
	r.SeatID = s.ID
	s.Reservations = append(s.Reservations, r)
	return nil
}

// CheckIn scans the active reservations whose check-in window
// [start-lead, end) contains now and checks the acting user in to their
// own one. Back-to-back bookings overlap through the lead window, so
// ownership decides which reservation answers, never list order. The
// attempt fails with ErrAlreadyCheckedIn when every covering
// reservation of the acting user is already attended, with ErrWrongUser
// when only other users' reservations cover the moment, and with
// ErrOutsideCheckInWindow when none does. The three failure modes stay
// independently observable.
func (s *Seat) CheckIn(actingEmail string, now time.Time, lead time.Duration) (*Reservation, error) {
	var attended, foreign bool
	for _, r := range s.Active() {
		if !r.InCheckInWindow(now, lead) {
			continue
		}
		if r.UserEmail != actingEmail {
			foreign = true
			continue
		}
		if r.CheckedIn {
			attended = true
			continue
		}
		if err := r.CheckIn(actingEmail); err != nil {
			return nil, err
		}
		return r, nil
	}
	if attended {
		return nil, ErrAlreadyCheckedIn
	}
	if foreign {
		return nil, ErrWrongUser
	}
	return nil, ErrOutsideCheckInWindow
}
