// Package domain contains the reservation admission and check-in rules.
// It performs no I/O: callers load a seat aggregate from storage, invoke
// the operations here with an explicit "now", and persist the result.
// Every failure is a sentinel error so that handlers and tests can
// distinguish the exact cause with errors.Is.
package domain

import "errors"

var (
	// ErrInvalidTimeOrder is returned when a reservation does not start
	// strictly before it ends.
	ErrInvalidTimeOrder = errors.New("start time must be before end time")

	// ErrPastStartTime is returned when a reservation starts at or before
	// the current time. Booking the past is never allowed.
	ErrPastStartTime = errors.New("start time must be in the future")

	// ErrTimeslotConflict is returned when a candidate reservation overlaps
	// an existing non-cancelled reservation on the same seat.
	ErrTimeslotConflict = errors.New("timeslot conflicts with an existing reservation")

	// ErrSeatUnavailable is returned when a seat has been marked
	// unavailable by an administrator. Unavailable seats reject every
	// reservation attempt before any time-window logic runs.
	ErrSeatUnavailable = errors.New("seat is unavailable")

	// ErrAlreadyCheckedIn is returned when check-in is attempted on a
	// reservation that has already been checked in. The second call fails;
	// there is no silent no-op.
	ErrAlreadyCheckedIn = errors.New("reservation already checked in")

	// ErrWrongUser is returned when the acting user is not the user who
	// made the reservation.
	ErrWrongUser = errors.New("reservation belongs to a different user")

	// ErrOutsideCheckInWindow is returned when no reservation on the seat
	// covers the current moment (allowing for the configured lead time).
	ErrOutsideCheckInWindow = errors.New("cannot check in outside the reservation window")
)

// Reason codes exposed to API clients. Each domain error maps to exactly
// one code so the UI can react differently per case.
const (
	ReasonInvalidTimeOrder = "INVALID_TIME_ORDER"
	ReasonPastStartTime    = "PAST_START_TIME"
	ReasonTimeslotConflict = "TIMESLOT_CONFLICT"
	ReasonUnavailableSeat  = "UNAVAILABLE_SEAT"
	ReasonAlreadyCheckedIn = "ALREADY_CHECKED_IN"
	ReasonWrongUser        = "WRONG_USER"
	ReasonOutsideWindow    = "OUTSIDE_WINDOW"
)

// Reason returns the stable machine-readable code for a domain error, or
// an empty string when the error did not originate in this package.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTimeOrder):
		return ReasonInvalidTimeOrder
	case errors.Is(err, ErrPastStartTime):
		return ReasonPastStartTime
	case errors.Is(err, ErrTimeslotConflict):
		return ReasonTimeslotConflict
	case errors.Is(err, ErrSeatUnavailable):
		return ReasonUnavailableSeat
	case errors.Is(err, ErrAlreadyCheckedIn):
		return ReasonAlreadyCheckedIn
	case errors.Is(err, ErrWrongUser):
		return ReasonWrongUser
	case errors.Is(err, ErrOutsideCheckInWindow):
		return ReasonOutsideWindow
	}
	return ""
}
