// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a seat reservation is accepted.
// It carries enough context for downstream consumers to log or notify without
// querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	UserEmail     string `json:"user_email"`
	SeatID        uint64 `json:"seat_id"`
	SeatName      string `json:"seat_name"`
	FloorName     string `json:"floor_name"`
	BuildingName  string `json:"building_name"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled by
// its owner.
type ReservationCancelledEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	UserEmail     string `json:"user_email"`
	SeatID        uint64 `json:"seat_id"`
	SeatName      string `json:"seat_name"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	CancelledAt   string `json:"cancelled_at"`
}
